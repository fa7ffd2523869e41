package call

import (
	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Signature is one declared acceptable shape for an argument vector: a
// required positional count plus a set of named options.
type Signature struct {
	name     string
	required int
	options  []string
}

func (s Signature) describe() errors.SignatureDesc {
	return errors.SignatureDesc{
		Name:     s.name,
		Required: s.required,
		Options:  append([]string(nil), s.options...),
	}
}

// Binder accumulates declared signatures and matches one against a supplied
// argument vector.
type Binder struct {
	sigs []Signature
}

// NewBinder creates an empty binder for multi-format parsing.
func NewBinder() *Binder {
	return &Binder{}
}

// Define declares a signature: a name for Is, a required positional count,
// and the recognized option names. Returns the binder for chaining.
func (b *Binder) Define(name string, required int, options ...string) *Binder {
	b.sigs = append(b.sigs, Signature{
		name:     name,
		required: required,
		options:  append([]string(nil), options...),
	})
	return b
}

// Parse matches the argument vector against the declared signatures in
// declaration order; the first match wins even when a later signature is
// more specific. No match is a signature mismatch error naming the supplied
// count and every declared signature.
func (b *Binder) Parse(args []*mx.Array) (*Bound, error) {
	for _, sig := range b.sigs {
		if bound, ok := match(sig, args); ok {
			return bound, nil
		}
	}

	descs := make([]errors.SignatureDesc, len(b.sigs))
	for i, sig := range b.sigs {
		descs[i] = sig.describe()
	}
	return nil, &errors.SignatureMismatchError{
		Supplied:   len(args),
		Signatures: descs,
	}
}

// Bind is the single-format mode: declare one anonymous signature and match
// it immediately.
func Bind(args []*mx.Array, required int, options ...string) (*Bound, error) {
	return NewBinder().Define("", required, options...).Parse(args)
}

// optionName extracts a candidate option name from an argument: a char row
// vector. The empty string is not a name.
func optionName(a *mx.Array) (string, bool) {
	if !a.IsChar() || a.IsEmpty() {
		return "", false
	}
	return a.String(), true
}

func recognized(name string, options []string) bool {
	for _, o := range options {
		if o == name {
			return true
		}
	}
	return false
}

// match applies one signature. The argument vector splits into the required
// prefix, zero or more extra positionals, and a trailing name/value run. The
// run starts at the first char-array argument after the required prefix;
// from there every name must be recognized and unrepeated and the run length
// even.
func match(sig Signature, args []*mx.Array) (*Bound, bool) {
	n := len(args)
	if n < sig.required {
		return nil, false
	}

	runStart := n
	for i := sig.required; i < n; i++ {
		if _, ok := optionName(args[i]); ok {
			runStart = i
			break
		}
	}

	run := args[runStart:]
	if len(run)%2 != 0 {
		return nil, false
	}

	opts := make(map[string]*mx.Array, len(run)/2)
	for j := 0; j < len(run); j += 2 {
		name, ok := optionName(run[j])
		if !ok || !recognized(name, sig.options) {
			return nil, false
		}
		if _, dup := opts[name]; dup {
			return nil, false
		}
		opts[name] = run[j+1]
	}

	return &Bound{
		sig:        sig,
		args:       args,
		positional: runStart,
		opts:       opts,
	}, true
}

// Bound is the signature-matched view of one invocation's arguments.
type Bound struct {
	sig        Signature
	args       []*mx.Array
	positional int
	opts       map[string]*mx.Array
}

// Is reports whether the named declared signature was the one selected.
func (b *Bound) Is(name string) bool {
	return b.sig.name == name
}

// NumPositional returns the number of positional slots in the matched
// vector, required prefix plus extras before the name/value run.
func (b *Bound) NumPositional() int {
	return b.positional
}

// Has reports whether the named option was supplied.
func (b *Bound) Has(name string) bool {
	_, ok := b.opts[name]
	return ok
}

// Get converts the positional slot at index i, 0-based over the full
// argument vector. An index inside the name/value run or beyond the vector
// is an index error.
func Get[T any](b *Bound, i int) (T, error) {
	var zero T
	if i < 0 || i >= b.positional {
		return zero, errors.Index(errors.PhaseBind, nil, i, b.positional)
	}
	return convert.To[T](b.args[i])
}

// Option converts the named option's value, or returns def unconverted when
// the option was not supplied. A name the matched signature never declared
// is an index error.
func Option[T any](b *Bound, name string, def T) (T, error) {
	if !recognized(name, b.sig.options) {
		var zero T
		return zero, errors.New(errors.PhaseBind, errors.KindIndex).
			Detail("option %q not declared by signature %q", name, b.sig.name).
			Build()
	}
	a, ok := b.opts[name]
	if !ok {
		return def, nil
	}
	return convert.To[T](a)
}
