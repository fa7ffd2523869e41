// Package convert implements the bidirectional conversion registry between
// foreign array values and native Go values.
//
// The two directions are To (foreign to native) and From (native to foreign):
//
//	n, err := convert.To[int32](arr)
//	arr, err := convert.From(3.14)
//
// ToInto is the copy-avoiding overload that decodes into caller-supplied
// storage. To fails with a conversion error when the foreign class or shape
// is incompatible with the requested type (for example a scalar requested
// from a multi-element matrix); From succeeds for every supported native
// type.
//
// # Containers
//
// ToSlice and FromSlice express the container rule once, generically: a
// sequence of T converts by composing T's own element converter. Built-in
// numeric element types map to dense matrices, everything else to cell
// arrays. String-keyed maps map to scalar struct arrays.
//
// # Extension
//
// Register a converter pair to support a new native type in both directions:
//
//	convert.Register(fromPoint, toPoint)
//
// Once registered, slices of the type convert automatically through the
// container rule. Registries freeze after setup; narrowing numeric
// conversions truncate per Go conversion rules.
package convert
