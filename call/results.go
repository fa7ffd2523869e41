package call

import (
	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
	"github.com/wippyai/mex-bridge/wrap"
)

// Results holds the output slots of one invocation: the caller requested a
// number of outputs, the entry point declared the maximum it can produce.
type Results struct {
	requested int
	max       int
	slots     []*mx.Array
}

// NewResults creates the output slot vector for a call requesting
// `requested` outputs from an entry point producing at most `max`.
func NewResults(requested, max int) (*Results, error) {
	if requested < 0 || max < 0 {
		return nil, errors.InvalidInput(errors.PhaseOutput, "negative output count")
	}
	if requested > max {
		return nil, errors.New(errors.PhaseOutput, errors.KindIndex).
			Detail("%d outputs requested, entry point produces at most %d", requested, max).
			Build()
	}
	return &Results{
		requested: requested,
		max:       max,
		slots:     make([]*mx.Array, requested),
	}, nil
}

// Requested returns the number of outputs the caller asked for.
func (r *Results) Requested() int {
	return r.requested
}

// Slots returns the requested output slots. Unset slots are nil.
func (r *Results) Slots() []*mx.Array {
	return r.slots
}

// checkSlot validates an output index: beyond the declared maximum is a
// fatal index error (misuse by the entry point itself), between requested
// and maximum the value is silently discarded.
func (r *Results) checkSlot(i int) (store bool, err error) {
	if i < 0 || i >= r.max {
		return false, errors.Index(errors.PhaseOutput, nil, i, r.max)
	}
	return i < r.requested, nil
}

// SetArray stores a foreign value into output slot i, replacing any prior
// value. The slot takes ownership.
func (r *Results) SetArray(i int, a *mx.Array) error {
	store, err := r.checkSlot(i)
	if err != nil {
		return err
	}
	if store {
		r.slots[i] = a
	}
	return nil
}

// SetValue releases an owned wrapper into output slot i. The wrapper is
// released even when the slot was not requested, so ownership accounting
// stays uniform for the entry point.
func (r *Results) SetValue(i int, v *wrap.Value) error {
	a, err := v.Release()
	if err != nil {
		return err
	}
	return r.SetArray(i, a)
}

// Set converts a native value and stores it into output slot i.
func Set[T any](r *Results, i int, v T) error {
	store, err := r.checkSlot(i)
	if err != nil {
		return err
	}
	if !store {
		return nil
	}
	a, err := convert.From(v)
	if err != nil {
		return err
	}
	r.slots[i] = a
	return nil
}
