package convert

import (
	"reflect"

	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Numeric constrains the native element types that map onto dense numeric
// matrices.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~int | ~uint | ~float32 | ~float64
}

// classOf maps a built-in numeric element type to its foreign class. int and
// uint widen to the 64-bit classes.
func classOf(v any) mx.ClassID {
	switch v.(type) {
	case float64:
		return mx.ClassDouble
	case float32:
		return mx.ClassSingle
	case int8:
		return mx.ClassInt8
	case uint8:
		return mx.ClassUint8
	case int16:
		return mx.ClassInt16
	case uint16:
		return mx.ClassUint16
	case int32:
		return mx.ClassInt32
	case uint32:
		return mx.ClassUint32
	case int64, int:
		return mx.ClassInt64
	case uint64, uint:
		return mx.ClassUint64
	}
	return mx.ClassUnknown
}

// ClassFor maps the native element type T to its foreign class.
func ClassFor[T Numeric]() mx.ClassID {
	return classForKind(reflect.TypeFor[T]().Kind())
}

// ElemTo reads element i of a dense numeric or logical matrix as T,
// truncating per Go conversion rules.
func ElemTo[T Numeric](a *mx.Array, i int) (T, error) {
	return numericElem[T](a, i)
}

// ElemFrom stores v into element i of a dense numeric matrix, truncating to
// the matrix's element class.
func ElemFrom[T Numeric](a *mx.Array, i int, v T) error {
	return storeNumericElem(a, i, v)
}

// numericElem reads element i of a numeric or logical array as T, truncating
// per Go conversion rules. The typed switch keeps 64-bit integers exact where
// a float64 intermediate would not.
func numericElem[T Numeric](a *mx.Array, i int) (T, error) {
	if a.IsLogical() {
		b := a.Logicals()
		if i < 0 || i >= len(b) {
			return 0, errors.Index(errors.PhaseDecode, nil, i, len(b))
		}
		if b[i] {
			return 1, nil
		}
		return 0, nil
	}

	if !a.IsNumeric() {
		var zero T
		return zero, errors.Conversion(errors.PhaseDecode, nil, typeName[T](), a.Class().String())
	}
	if i < 0 || i >= a.NumElements() {
		return 0, errors.Index(errors.PhaseDecode, nil, i, a.NumElements())
	}

	switch d := a.Data().(type) {
	case []float64:
		return T(d[i]), nil
	case []float32:
		return T(d[i]), nil
	case []int8:
		return T(d[i]), nil
	case []uint8:
		return T(d[i]), nil
	case []int16:
		return T(d[i]), nil
	case []uint16:
		return T(d[i]), nil
	case []int32:
		return T(d[i]), nil
	case []uint32:
		return T(d[i]), nil
	case []int64:
		return T(d[i]), nil
	case []uint64:
		return T(d[i]), nil
	}
	var zero T
	return zero, errors.Conversion(errors.PhaseDecode, nil, typeName[T](), a.Class().String())
}

// storeNumericElem writes v into element i of a numeric array of matching
// native type, truncating per Go conversion rules when classes differ.
func storeNumericElem[T Numeric](a *mx.Array, i int, v T) error {
	if !a.IsNumeric() {
		return errors.Conversion(errors.PhaseEncode, nil, typeName[T](), a.Class().String())
	}
	if i < 0 || i >= a.NumElements() {
		return errors.Index(errors.PhaseEncode, nil, i, a.NumElements())
	}

	switch d := a.Data().(type) {
	case []float64:
		d[i] = float64(v)
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
	default:
		return errors.Conversion(errors.PhaseEncode, nil, typeName[T](), a.Class().String())
	}
	return nil
}

func complexElem(a *mx.Array, i int) (complex128, error) {
	if !a.IsNumeric() {
		return 0, errors.Conversion(errors.PhaseDecode, nil, "complex128", a.Class().String())
	}
	re, err := a.FloatAt(i)
	if err != nil {
		return 0, err
	}
	im, err := a.ImagAt(i)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}
