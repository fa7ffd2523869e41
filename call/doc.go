// Package call binds entry-point argument vectors against declared
// signatures and assigns output slots.
//
// The binder has two modes. Bind declares a single signature and matches it
// immediately; NewBinder().Define(...).Parse(args) declares several and
// selects the first declared signature that matches, even when a later one
// is more specific. A matched signature splits the vector into positional
// slots and a trailing name/value option run; Get and Option convert them
// to native types through the conversion registry.
//
// Results mirrors the output side: the caller requests a number of outputs,
// the entry point declares its maximum. Setting a slot the caller did not
// request is a silent no-op; setting one beyond the declared maximum is a
// fatal index error.
package call
