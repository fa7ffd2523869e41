package wrap

import (
	"fmt"

	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Go methods cannot take type parameters, so element access lives in package
// functions over *Value.

// At reads element i (column-major linear index) as native type T. Cell
// elements convert through the conversion registry; dense elements through
// the element class.
func At[T any](v *Value, i int) (T, error) {
	var zero T
	a, err := v.use(errors.PhaseDecode)
	if err != nil {
		return zero, err
	}
	el, err := elementAt(a, i)
	if err != nil {
		return zero, err
	}
	return convert.To[T](el)
}

// AtRC reads element (row, col) as native type T.
func AtRC[T any](v *Value, row, col int) (T, error) {
	var zero T
	a, err := v.use(errors.PhaseDecode)
	if err != nil {
		return zero, err
	}
	i, err := a.Index(row, col)
	if err != nil {
		return zero, err
	}
	el, err := elementAt(a, i)
	if err != nil {
		return zero, err
	}
	return convert.To[T](el)
}

// AtField reads the named field of a scalar struct as native type T.
func AtField[T any](v *Value, name string) (T, error) {
	return AtFieldIndex[T](v, name, 0)
}

// AtFieldIndex reads the named field of the given struct record as native
// type T.
func AtFieldIndex[T any](v *Value, name string, record int) (T, error) {
	var zero T
	a, err := v.use(errors.PhaseDecode)
	if err != nil {
		return zero, err
	}
	f, err := a.FieldIndexed(name, record)
	if err != nil {
		return zero, err
	}
	if f == nil {
		f = mx.Empty()
	}
	return convert.To[T](f)
}

// Set converts x and stores it into element i. Cell elements replace the
// prior element; a *Value or *mx.Array stored into a cell is absorbed into
// the parent. Dense elements truncate to the matrix's element class.
func Set[T any](v *Value, i int, x T) error {
	a, err := v.useOwned(errors.PhaseEncode)
	if err != nil {
		return err
	}
	return setAt(a, i, any(x))
}

// SetRC converts x and stores it into element (row, col).
func SetRC[T any](v *Value, row, col int, x T) error {
	a, err := v.useOwned(errors.PhaseEncode)
	if err != nil {
		return err
	}
	i, err := a.Index(row, col)
	if err != nil {
		return err
	}
	return setAt(a, i, any(x))
}

// SetField converts x and stores it into the named field of a scalar
// struct.
func SetField[T any](v *Value, name string, x T) error {
	return SetFieldIndex(v, name, 0, x)
}

// SetFieldIndex converts x and stores it into the named field of the given
// struct record.
func SetFieldIndex[T any](v *Value, name string, record int, x T) error {
	a, err := v.useOwned(errors.PhaseEncode)
	if err != nil {
		return err
	}
	el, err := encode(any(x))
	if err != nil {
		return err
	}
	return a.SetFieldIndexed(name, record, el)
}

func elementAt(a *mx.Array, i int) (*mx.Array, error) {
	if a.IsCell() {
		el, err := a.Cell(i)
		if err != nil {
			return nil, err
		}
		if el == nil {
			el = mx.Empty()
		}
		return el, nil
	}
	return a.ElemArray(i)
}

// encode turns a native value into a foreign value, absorbing ownership of
// wrapped and raw arrays.
func encode(x any) (*mx.Array, error) {
	switch t := x.(type) {
	case *Value:
		return t.Release()
	case *mx.Array:
		return t, nil
	}
	return convert.From(x)
}

func setAt(a *mx.Array, i int, x any) error {
	switch {
	case a.IsCell():
		el, err := encode(x)
		if err != nil {
			return err
		}
		return a.SetCell(i, el)

	case a.IsNumeric():
		return setDense(a, i, x)

	case a.IsLogical():
		b, ok := x.(bool)
		if !ok {
			return errors.Conversion(errors.PhaseEncode, nil, typeOf(x), a.Class().String())
		}
		if i < 0 || i >= a.NumElements() {
			return errors.Index(errors.PhaseEncode, nil, i, a.NumElements())
		}
		a.Logicals()[i] = b
		return nil
	}
	return errors.Conversion(errors.PhaseEncode, nil, typeOf(x), a.Class().String())
}

func setDense(a *mx.Array, i int, x any) error {
	switch t := x.(type) {
	case float64:
		return convert.ElemFrom(a, i, t)
	case float32:
		return convert.ElemFrom(a, i, t)
	case int8:
		return convert.ElemFrom(a, i, t)
	case uint8:
		return convert.ElemFrom(a, i, t)
	case int16:
		return convert.ElemFrom(a, i, t)
	case uint16:
		return convert.ElemFrom(a, i, t)
	case int32:
		return convert.ElemFrom(a, i, t)
	case uint32:
		return convert.ElemFrom(a, i, t)
	case int64:
		return convert.ElemFrom(a, i, t)
	case uint64:
		return convert.ElemFrom(a, i, t)
	case int:
		return convert.ElemFrom(a, i, t)
	case uint:
		return convert.ElemFrom(a, i, t)
	case bool:
		var f float64
		if t {
			f = 1
		}
		return convert.ElemFrom(a, i, f)
	case complex128:
		if err := convert.ElemFrom(a, i, real(t)); err != nil {
			return err
		}
		return a.SetImagAt(i, imag(t))
	case complex64:
		if err := convert.ElemFrom(a, i, float64(real(t))); err != nil {
			return err
		}
		return a.SetImagAt(i, float64(imag(t)))
	}
	return errors.Conversion(errors.PhaseEncode, nil, typeOf(x), a.Class().String())
}

func typeOf(x any) string {
	return fmt.Sprintf("%T", x)
}
