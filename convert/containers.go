package convert

import (
	"reflect"
	"strconv"

	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// ToSlice converts a foreign value to a native slice by composing T's own
// element converter: cell arrays convert element-wise through To[T], dense
// numeric and logical matrices through the typed element path. This is the
// container rule - any T that converts as a scalar converts as a sequence.
func ToSlice[T any](a *mx.Array) ([]T, error) {
	return ToSliceIn[T](defaultRegistry, a)
}

// ToSliceIn is ToSlice against a specific registry.
func ToSliceIn[T any](r *Registry, a *mx.Array) ([]T, error) {
	if a == nil {
		return nil, errors.Conversion(errors.PhaseDecode, nil, "[]"+typeName[T](), "empty")
	}

	if a.IsCell() {
		cells := a.Cells()
		out := make([]T, len(cells))
		for i, el := range cells {
			v, err := ToIn[T](r, el)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseDecode, errors.KindConversion, err,
					"element "+strconv.Itoa(i))
			}
			out[i] = v
		}
		return out, nil
	}

	var out []T
	ok, err := denseSliceInto(a, any(&out))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Conversion(errors.PhaseDecode, nil, "[]"+typeName[T](), a.Class().String())
	}
	return out, nil
}

// denseSliceInto fills a built-in element slice from a dense matrix.
// Returns false when the target element type has no dense representation.
func denseSliceInto(a *mx.Array, out any) (bool, error) {
	switch p := out.(type) {
	case *[]float64:
		return true, fillNumericSlice(a, p)
	case *[]float32:
		return true, fillNumericSlice(a, p)
	case *[]int8:
		return true, fillNumericSlice(a, p)
	case *[]uint8:
		return true, fillNumericSlice(a, p)
	case *[]int16:
		return true, fillNumericSlice(a, p)
	case *[]uint16:
		return true, fillNumericSlice(a, p)
	case *[]int32:
		return true, fillNumericSlice(a, p)
	case *[]uint32:
		return true, fillNumericSlice(a, p)
	case *[]int64:
		return true, fillNumericSlice(a, p)
	case *[]uint64:
		return true, fillNumericSlice(a, p)
	case *[]int:
		return true, fillNumericSlice(a, p)
	case *[]uint:
		return true, fillNumericSlice(a, p)
	case *[]bool:
		if !a.IsLogical() {
			return true, errors.Conversion(errors.PhaseDecode, nil, "[]bool", a.Class().String())
		}
		*p = append((*p)[:0], a.Logicals()...)
		return true, nil
	case *[]complex128:
		return true, fillComplexSlice(a, p)
	}
	return false, nil
}

// fillNumericSlice writes the matrix elements into p, reusing its backing
// array when the capacity allows.
func fillNumericSlice[T Numeric](a *mx.Array, p *[]T) error {
	out := (*p)[:0]

	if a.IsLogical() {
		for _, b := range a.Logicals() {
			var v T
			if b {
				v = 1
			}
			out = append(out, v)
		}
		*p = out
		return nil
	}

	if !a.IsNumeric() {
		return errors.Conversion(errors.PhaseDecode, nil, "[]"+typeName[T](), a.Class().String())
	}

	// Same element type: straight copy
	if d, ok := a.Data().([]T); ok {
		*p = append(out, d...)
		return nil
	}

	for i, n := 0, a.NumElements(); i < n; i++ {
		v, err := numericElem[T](a, i)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	*p = out
	return nil
}

func fillComplexSlice(a *mx.Array, p *[]complex128) error {
	if !a.IsNumeric() {
		return errors.Conversion(errors.PhaseDecode, nil, "[]complex128", a.Class().String())
	}
	out := (*p)[:0]
	for i, n := 0, a.NumElements(); i < n; i++ {
		v, err := complexElem(a, i)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	*p = out
	return nil
}

// FromSlice converts a native slice to a foreign value by composing T's own
// element converter: built-in numeric element types produce a dense 1-by-n
// matrix, everything else a 1-by-n cell array.
func FromSlice[T any](vs []T) (*mx.Array, error) {
	return fromAny(defaultRegistry, vs)
}

func classForKind(k reflect.Kind) mx.ClassID {
	switch k {
	case reflect.Float64:
		return mx.ClassDouble
	case reflect.Float32:
		return mx.ClassSingle
	case reflect.Int8:
		return mx.ClassInt8
	case reflect.Uint8:
		return mx.ClassUint8
	case reflect.Int16:
		return mx.ClassInt16
	case reflect.Uint16:
		return mx.ClassUint16
	case reflect.Int32:
		return mx.ClassInt32
	case reflect.Uint32:
		return mx.ClassUint32
	case reflect.Int64, reflect.Int:
		return mx.ClassInt64
	case reflect.Uint64, reflect.Uint:
		return mx.ClassUint64
	}
	return mx.ClassUnknown
}

// FromMatrix converts row-slices into a rows-by-cols dense matrix. All rows
// must have equal length.
func FromMatrix[T Numeric](rows [][]T) (*mx.Array, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.InvalidInput(errors.PhaseEncode,
				"ragged matrix: row "+strconv.Itoa(i)+" has "+strconv.Itoa(len(row))+
					" elements, want "+strconv.Itoa(c))
		}
	}

	class := classForKind(reflect.TypeFor[T]().Kind())
	a, err := mx.NewNumeric(class, r, c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, v := range row {
			if err := storeNumericElem(a, i+j*r, v); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

// ToMatrix converts a dense matrix (or logical matrix) into row-slices.
func ToMatrix[T Numeric](a *mx.Array) ([][]T, error) {
	if a == nil {
		return nil, errors.Conversion(errors.PhaseDecode, nil, "[][]"+typeName[T](), "empty")
	}
	if !a.IsNumeric() && !a.IsLogical() {
		return nil, errors.Conversion(errors.PhaseDecode, nil, "[][]"+typeName[T](), a.Class().String())
	}
	r, c := a.Rows(), a.Cols()
	out := make([][]T, r)
	for i := 0; i < r; i++ {
		out[i] = make([]T, c)
		for j := 0; j < c; j++ {
			v, err := numericElem[T](a, i+j*r)
			if err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}
	return out, nil
}
