package mx

import (
	"github.com/wippyai/mex-bridge/errors"
)

func newNumericData(class ClassID, n int) any {
	switch class {
	case ClassDouble:
		return make([]float64, n)
	case ClassSingle:
		return make([]float32, n)
	case ClassInt8:
		return make([]int8, n)
	case ClassUint8:
		return make([]uint8, n)
	case ClassInt16:
		return make([]int16, n)
	case ClassUint16:
		return make([]uint16, n)
	case ClassInt32:
		return make([]int32, n)
	case ClassUint32:
		return make([]uint32, n)
	case ClassInt64:
		return make([]int64, n)
	case ClassUint64:
		return make([]uint64, n)
	}
	return nil
}

func cloneNumericData(data any) any {
	switch d := data.(type) {
	case nil:
		return nil
	case []float64:
		return append([]float64(nil), d...)
	case []float32:
		return append([]float32(nil), d...)
	case []int8:
		return append([]int8(nil), d...)
	case []uint8:
		return append([]uint8(nil), d...)
	case []int16:
		return append([]int16(nil), d...)
	case []uint16:
		return append([]uint16(nil), d...)
	case []int32:
		return append([]int32(nil), d...)
	case []uint32:
		return append([]uint32(nil), d...)
	case []int64:
		return append([]int64(nil), d...)
	case []uint64:
		return append([]uint64(nil), d...)
	}
	return nil
}

func floatFrom(data any, i int) float64 {
	switch d := data.(type) {
	case []float64:
		return d[i]
	case []float32:
		return float64(d[i])
	case []int8:
		return float64(d[i])
	case []uint8:
		return float64(d[i])
	case []int16:
		return float64(d[i])
	case []uint16:
		return float64(d[i])
	case []int32:
		return float64(d[i])
	case []uint32:
		return float64(d[i])
	case []int64:
		return float64(d[i])
	case []uint64:
		return float64(d[i])
	}
	return 0
}

func storeFloat(data any, i int, v float64) {
	switch d := data.(type) {
	case []float64:
		d[i] = v
	case []float32:
		d[i] = float32(v)
	case []int8:
		d[i] = int8(v)
	case []uint8:
		d[i] = uint8(v)
	case []int16:
		d[i] = int16(v)
	case []uint16:
		d[i] = uint16(v)
	case []int32:
		d[i] = int32(v)
	case []uint32:
		d[i] = uint32(v)
	case []int64:
		d[i] = int64(v)
	case []uint64:
		d[i] = uint64(v)
	}
}

func copyElem(dst, src any, di, si int) {
	switch s := src.(type) {
	case []float64:
		dst.([]float64)[di] = s[si]
	case []float32:
		dst.([]float32)[di] = s[si]
	case []int8:
		dst.([]int8)[di] = s[si]
	case []uint8:
		dst.([]uint8)[di] = s[si]
	case []int16:
		dst.([]int16)[di] = s[si]
	case []uint16:
		dst.([]uint16)[di] = s[si]
	case []int32:
		dst.([]int32)[di] = s[si]
	case []uint32:
		dst.([]uint32)[di] = s[si]
	case []int64:
		dst.([]int64)[di] = s[si]
	case []uint64:
		dst.([]uint64)[di] = s[si]
	}
}

// ElemArray returns a 1x1 array of the same class holding element i. Defined
// for numeric, logical and char arrays; cell and struct elements are reached
// through Cell and Field.
func (a *Array) ElemArray(i int) (*Array, error) {
	switch {
	case a.IsNumeric():
		if err := a.checkNumericIndex(i); err != nil {
			return nil, err
		}
		var out *Array
		var err error
		if a.IsComplex() {
			out, err = NewComplex(a.class, 1, 1)
		} else {
			out, err = NewNumeric(a.class, 1, 1)
		}
		if err != nil {
			return nil, err
		}
		copyElem(out.data, a.data, 0, i)
		if a.imag != nil {
			copyElem(out.imag, a.imag, 0, i)
		}
		return out, nil

	case a.IsLogical():
		if i < 0 || i >= len(a.logical) {
			return nil, errors.Index(errors.PhaseDecode, nil, i, len(a.logical))
		}
		out, err := NewLogical(1, 1)
		if err != nil {
			return nil, err
		}
		out.logical[0] = a.logical[i]
		return out, nil

	case a.IsChar():
		if i < 0 || i >= len(a.chars) {
			return nil, errors.Index(errors.PhaseDecode, nil, i, len(a.chars))
		}
		return &Array{class: ClassChar, rows: 1, cols: 1, chars: []uint16{a.chars[i]}}, nil
	}
	return nil, errors.Conversion(errors.PhaseDecode, nil, "element", a.Class().String())
}

func (a *Array) checkNumericIndex(i int) error {
	if a == nil || !a.class.IsNumeric() {
		return errors.Conversion(errors.PhaseDecode, nil, "numeric element", a.Class().String())
	}
	if i < 0 || i >= a.NumElements() {
		return errors.Index(errors.PhaseDecode, nil, i, a.NumElements())
	}
	return nil
}

// FloatAt returns numeric element i widened to float64. Integer classes wider
// than the float64 mantissa lose precision; the typed Data slice is the exact
// path.
func (a *Array) FloatAt(i int) (float64, error) {
	if err := a.checkNumericIndex(i); err != nil {
		return 0, err
	}
	return floatFrom(a.data, i), nil
}

// SetFloatAt stores v into numeric element i, truncating per Go conversion
// rules for integer classes.
func (a *Array) SetFloatAt(i int, v float64) error {
	if err := a.checkNumericIndex(i); err != nil {
		return err
	}
	storeFloat(a.data, i, v)
	return nil
}

// ImagAt returns imaginary element i, zero when the array is real.
func (a *Array) ImagAt(i int) (float64, error) {
	if err := a.checkNumericIndex(i); err != nil {
		return 0, err
	}
	if a.imag == nil {
		return 0, nil
	}
	return floatFrom(a.imag, i), nil
}

// SetImagAt stores v into imaginary element i.
func (a *Array) SetImagAt(i int, v float64) error {
	if err := a.checkNumericIndex(i); err != nil {
		return err
	}
	if a.imag == nil {
		return errors.InvalidInput(errors.PhaseEncode, "array has no imaginary component")
	}
	storeFloat(a.imag, i, v)
	return nil
}
