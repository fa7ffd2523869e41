package wrap

import (
	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Value is an ownership-tracked handle to a foreign value. Handles produced
// by the factories in this package are owned and must be released into an
// output slot or a parent container, or destroyed, before the call returns.
// Handles produced by Borrow wrap caller-owned input and are read-only.
type Value struct {
	arr      *mx.Array
	owned    bool
	released bool
}

// Own wraps an array the caller already owns, typically one produced by
// convert.From or released from another handle.
func Own(a *mx.Array) *Value {
	return &Value{arr: a, owned: true}
}

// Borrow wraps a caller-owned input value. The handle cannot be written to
// or released; the underlying value must not be used after the entry point
// returns.
func Borrow(a *mx.Array) *Value {
	return &Value{arr: a}
}

// Cell creates an owned rows-by-cols cell array handle, all elements empty.
func Cell(rows, cols int) (*Value, error) {
	a, err := mx.NewCell(rows, cols)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// Struct creates an owned scalar struct handle with the given fields, all
// initially empty.
func Struct(fields ...string) (*Value, error) {
	a, err := mx.NewStruct(fields...)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// StructMatrix creates an owned rows-by-cols struct array handle.
func StructMatrix(rows, cols int, fields ...string) (*Value, error) {
	a, err := mx.NewStructMatrix(rows, cols, fields...)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// Numeric creates an owned rows-by-cols dense matrix handle whose element
// class matches T, all elements zero.
func Numeric[T convert.Numeric](rows, cols int) (*Value, error) {
	a, err := mx.NewNumeric(convert.ClassFor[T](), rows, cols)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// Logical creates an owned rows-by-cols logical matrix handle.
func Logical(rows, cols int) (*Value, error) {
	a, err := mx.NewLogical(rows, cols)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// Char creates an owned char row vector handle holding s.
func Char(s string) *Value {
	return Own(mx.NewChar(s))
}

func (v *Value) use(phase errors.Phase) (*mx.Array, error) {
	if v == nil || v.arr == nil {
		return nil, errors.Ownership(phase, "nil handle")
	}
	if v.released {
		return nil, errors.Ownership(phase, "handle used after release")
	}
	return v.arr, nil
}

func (v *Value) useOwned(phase errors.Phase) (*mx.Array, error) {
	a, err := v.use(phase)
	if err != nil {
		return nil, err
	}
	if !v.owned {
		return nil, errors.Ownership(phase, "write to borrowed handle")
	}
	return a, nil
}

// Array returns the underlying foreign value for read access without
// transferring ownership.
func (v *Value) Array() (*mx.Array, error) {
	return v.use(errors.PhaseDecode)
}

// Owned reports whether the handle owns its value.
func (v *Value) Owned() bool {
	return v != nil && v.owned
}

// Released reports whether the handle has been released or destroyed.
func (v *Value) Released() bool {
	return v == nil || v.released
}

// Release hands the underlying value out and invalidates the handle. This
// is the only sanctioned way to move an owned value into an output slot or
// a parent container. Releasing a borrowed handle, or releasing twice, is
// an ownership error.
func (v *Value) Release() (*mx.Array, error) {
	a, err := v.useOwned(errors.PhaseEncode)
	if err != nil {
		return nil, err
	}
	v.released = true
	return a, nil
}

// Destroy invalidates the handle without transferring its value. Legal
// exactly once, on owned and borrowed handles alike.
func (v *Value) Destroy() error {
	if _, err := v.use(errors.PhaseEncode); err != nil {
		return err
	}
	v.released = true
	v.arr = nil
	return nil
}
