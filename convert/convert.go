package convert

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// To converts a foreign value to native type T. Supported T are the built-in
// scalars and slices, *mx.Array pass-through, map[string]*mx.Array, and any
// type registered with Register.
func To[T any](a *mx.Array) (T, error) {
	return ToIn[T](defaultRegistry, a)
}

// ToIn is To against a specific registry.
func ToIn[T any](r *Registry, a *mx.Array) (T, error) {
	var out T
	err := ToIntoIn(r, a, &out)
	return out, err
}

// ToInto is the copy-avoiding overload of To: it decodes into a
// caller-supplied native value, so large aggregates reuse the caller's
// storage.
func ToInto[T any](a *mx.Array, out *T) error {
	return ToIntoIn(defaultRegistry, a, out)
}

// ToIntoIn is ToInto against a specific registry.
func ToIntoIn[T any](r *Registry, a *mx.Array, out *T) error {
	if out == nil {
		return errors.InvalidInput(errors.PhaseDecode, "nil output pointer")
	}
	if a == nil {
		return errors.Conversion(errors.PhaseDecode, nil, typeName[T](), "empty")
	}

	switch p := any(out).(type) {
	case **mx.Array:
		*p = a
		return nil

	case *string:
		if !a.IsChar() {
			return errors.Conversion(errors.PhaseDecode, nil, "string", a.Class().String())
		}
		*p = a.String()
		return nil

	case *bool:
		if err := requireScalar[T](a); err != nil {
			return err
		}
		if a.IsLogical() {
			*p = a.Logicals()[0]
			return nil
		}
		if a.IsNumeric() {
			v, err := a.FloatAt(0)
			if err != nil {
				return err
			}
			*p = v != 0
			return nil
		}
		return errors.Conversion(errors.PhaseDecode, nil, "bool", a.Class().String())

	case *float64:
		return scalarInto(a, p)
	case *float32:
		return scalarInto(a, p)
	case *int8:
		return scalarInto(a, p)
	case *uint8:
		return scalarInto(a, p)
	case *int16:
		return scalarInto(a, p)
	case *uint16:
		return scalarInto(a, p)
	case *int32:
		return scalarInto(a, p)
	case *uint32:
		return scalarInto(a, p)
	case *int64:
		return scalarInto(a, p)
	case *uint64:
		return scalarInto(a, p)
	case *int:
		return scalarInto(a, p)
	case *uint:
		return scalarInto(a, p)

	case *complex128:
		if err := requireScalar[T](a); err != nil {
			return err
		}
		v, err := complexElem(a, 0)
		if err != nil {
			return err
		}
		*p = v
		return nil
	case *complex64:
		if err := requireScalar[T](a); err != nil {
			return err
		}
		v, err := complexElem(a, 0)
		if err != nil {
			return err
		}
		*p = complex64(v)
		return nil

	case *[]float64:
		return sliceInto(r, a, p)
	case *[]float32:
		return sliceInto(r, a, p)
	case *[]int8:
		return sliceInto(r, a, p)
	case *[]uint8:
		return sliceInto(r, a, p)
	case *[]int16:
		return sliceInto(r, a, p)
	case *[]uint16:
		return sliceInto(r, a, p)
	case *[]int32:
		return sliceInto(r, a, p)
	case *[]uint32:
		return sliceInto(r, a, p)
	case *[]int64:
		return sliceInto(r, a, p)
	case *[]uint64:
		return sliceInto(r, a, p)
	case *[]int:
		return sliceInto(r, a, p)
	case *[]uint:
		return sliceInto(r, a, p)

	case *[]bool:
		return sliceInto(r, a, p)

	case *[]string:
		return sliceInto(r, a, p)

	case *[]complex128:
		return sliceInto(r, a, p)

	case *[]*mx.Array:
		if !a.IsCell() {
			return errors.Conversion(errors.PhaseDecode, nil, "[]*mx.Array", a.Class().String())
		}
		*p = append((*p)[:0], a.Cells()...)
		return nil

	case *map[string]*mx.Array:
		if !a.IsStruct() {
			return errors.Conversion(errors.PhaseDecode, nil, "map[string]*mx.Array", a.Class().String())
		}
		if !a.IsScalar() {
			return errors.New(errors.PhaseDecode, errors.KindConversion).
				Class(a.Class().String()).
				Detail("struct array has %d records, map conversion needs exactly one", a.NumElements()).
				Build()
		}
		m := make(map[string]*mx.Array, a.NumFields())
		for _, f := range a.FieldNames() {
			v, err := a.Field(f)
			if err != nil {
				return err
			}
			m[f] = v
		}
		*p = m
		return nil
	}

	// Registered custom types
	if fn := r.toFor(reflect.TypeFor[T]()); fn != nil {
		v, err := fn(a)
		if err != nil {
			return err
		}
		*out = v.(T)
		return nil
	}

	return errors.Unsupported(errors.PhaseDecode,
		"no converter registered for type "+typeName[T]())
}

func requireScalar[T any](a *mx.Array) error {
	if a.IsScalar() {
		return nil
	}
	return errors.New(errors.PhaseDecode, errors.KindConversion).
		GoType(typeName[T]()).
		Class(a.Class().String()).
		Detail("scalar requested from %dx%d array", a.Rows(), a.Cols()).
		Build()
}

func scalarInto[T Numeric](a *mx.Array, p *T) error {
	if err := requireScalar[T](a); err != nil {
		return err
	}
	v, err := numericElem[T](a, 0)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// sliceInto fills p from a foreign value. Dense matrices write straight
// into p's backing array when its capacity allows; cell arrays go through
// the element converter and allocate.
func sliceInto[T any](r *Registry, a *mx.Array, p *[]T) error {
	if a != nil && !a.IsCell() {
		ok, err := denseSliceInto(a, any(p))
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	vs, err := ToSliceIn[T](r, a)
	if err != nil {
		return err
	}
	*p = vs
	return nil
}

// From converts a native value to a foreign value. Supported inputs are the
// built-in scalars and slices, *mx.Array pass-through, [][]T matrices via
// FromMatrix, registered custom types, and - composing element converters -
// slices and string-keyed maps of any supported type.
func From[T any](v T) (*mx.Array, error) {
	return defaultRegistry.From(v)
}

// From converts a native value to a foreign value, consulting this registry
// for custom types.
func (r *Registry) From(v any) (*mx.Array, error) {
	return fromAny(r, v)
}

func fromAny(r *Registry, v any) (*mx.Array, error) {
	switch x := v.(type) {
	case nil:
		return mx.Empty(), nil
	case *mx.Array:
		if x == nil {
			return mx.Empty(), nil
		}
		return x, nil

	case string:
		return mx.NewChar(x), nil

	case bool:
		a, err := mx.NewLogical(1, 1)
		if err != nil {
			return nil, err
		}
		a.Logicals()[0] = x
		return a, nil

	case float64:
		return fromScalar(mx.ClassDouble, func(a *mx.Array) { a.Data().([]float64)[0] = x })
	case float32:
		return fromScalar(mx.ClassSingle, func(a *mx.Array) { a.Data().([]float32)[0] = x })
	case int8:
		return fromScalar(mx.ClassInt8, func(a *mx.Array) { a.Data().([]int8)[0] = x })
	case uint8:
		return fromScalar(mx.ClassUint8, func(a *mx.Array) { a.Data().([]uint8)[0] = x })
	case int16:
		return fromScalar(mx.ClassInt16, func(a *mx.Array) { a.Data().([]int16)[0] = x })
	case uint16:
		return fromScalar(mx.ClassUint16, func(a *mx.Array) { a.Data().([]uint16)[0] = x })
	case int32:
		return fromScalar(mx.ClassInt32, func(a *mx.Array) { a.Data().([]int32)[0] = x })
	case uint32:
		return fromScalar(mx.ClassUint32, func(a *mx.Array) { a.Data().([]uint32)[0] = x })
	case int64:
		return fromScalar(mx.ClassInt64, func(a *mx.Array) { a.Data().([]int64)[0] = x })
	case uint64:
		return fromScalar(mx.ClassUint64, func(a *mx.Array) { a.Data().([]uint64)[0] = x })
	case int:
		return fromScalar(mx.ClassInt64, func(a *mx.Array) { a.Data().([]int64)[0] = int64(x) })
	case uint:
		return fromScalar(mx.ClassUint64, func(a *mx.Array) { a.Data().([]uint64)[0] = uint64(x) })

	case complex128:
		a, err := mx.NewComplex(mx.ClassDouble, 1, 1)
		if err != nil {
			return nil, err
		}
		a.Data().([]float64)[0] = real(x)
		if err := a.SetImagAt(0, imag(x)); err != nil {
			return nil, err
		}
		return a, nil
	case complex64:
		a, err := mx.NewComplex(mx.ClassSingle, 1, 1)
		if err != nil {
			return nil, err
		}
		a.Data().([]float32)[0] = real(x)
		if err := a.SetImagAt(0, float64(imag(x))); err != nil {
			return nil, err
		}
		return a, nil

	case []float64:
		return fromNumericSlice(mx.ClassDouble, len(x), func(a *mx.Array) { copy(a.Data().([]float64), x) })
	case []float32:
		return fromNumericSlice(mx.ClassSingle, len(x), func(a *mx.Array) { copy(a.Data().([]float32), x) })
	case []int8:
		return fromNumericSlice(mx.ClassInt8, len(x), func(a *mx.Array) { copy(a.Data().([]int8), x) })
	case []uint8:
		return fromNumericSlice(mx.ClassUint8, len(x), func(a *mx.Array) { copy(a.Data().([]uint8), x) })
	case []int16:
		return fromNumericSlice(mx.ClassInt16, len(x), func(a *mx.Array) { copy(a.Data().([]int16), x) })
	case []uint16:
		return fromNumericSlice(mx.ClassUint16, len(x), func(a *mx.Array) { copy(a.Data().([]uint16), x) })
	case []int32:
		return fromNumericSlice(mx.ClassInt32, len(x), func(a *mx.Array) { copy(a.Data().([]int32), x) })
	case []uint32:
		return fromNumericSlice(mx.ClassUint32, len(x), func(a *mx.Array) { copy(a.Data().([]uint32), x) })
	case []int64:
		return fromNumericSlice(mx.ClassInt64, len(x), func(a *mx.Array) { copy(a.Data().([]int64), x) })
	case []uint64:
		return fromNumericSlice(mx.ClassUint64, len(x), func(a *mx.Array) { copy(a.Data().([]uint64), x) })
	case []int:
		return fromNumericSlice(mx.ClassInt64, len(x), func(a *mx.Array) {
			d := a.Data().([]int64)
			for i, v := range x {
				d[i] = int64(v)
			}
		})
	case []uint:
		return fromNumericSlice(mx.ClassUint64, len(x), func(a *mx.Array) {
			d := a.Data().([]uint64)
			for i, v := range x {
				d[i] = uint64(v)
			}
		})

	case []bool:
		rows := 1
		if len(x) == 0 {
			rows = 0
		}
		a, err := mx.NewLogical(rows, len(x))
		if err != nil {
			return nil, err
		}
		copy(a.Logicals(), x)
		return a, nil

	case []complex128:
		a, err := mx.NewComplex(mx.ClassDouble, sliceRows(len(x)), len(x))
		if err != nil {
			return nil, err
		}
		d := a.Data().([]float64)
		for i, c := range x {
			d[i] = real(c)
			if err := a.SetImagAt(i, imag(c)); err != nil {
				return nil, err
			}
		}
		return a, nil

	case [][]float64:
		return FromMatrix(x)

	case []string:
		cell, err := mx.NewCell(sliceRows(len(x)), len(x))
		if err != nil {
			return nil, err
		}
		for i, s := range x {
			if err := cell.SetCell(i, mx.NewChar(s)); err != nil {
				return nil, err
			}
		}
		return cell, nil

	case []*mx.Array:
		cell, err := mx.NewCell(sliceRows(len(x)), len(x))
		if err != nil {
			return nil, err
		}
		for i, el := range x {
			if err := cell.SetCell(i, el); err != nil {
				return nil, err
			}
		}
		return cell, nil

	case map[string]*mx.Array:
		return structFromPairs(x, func(v *mx.Array) (*mx.Array, error) { return v, nil })
	}

	// Registered custom types
	if fn := r.fromFor(reflect.TypeOf(v)); fn != nil {
		return fn(v)
	}

	// Containers of supported element types compose element-wise: slices
	// become cell arrays, string-keyed maps become scalar structs.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		cell, err := mx.NewCell(sliceRows(rv.Len()), rv.Len())
		if err != nil {
			return nil, err
		}
		for i := 0; i < rv.Len(); i++ {
			el, err := fromAny(r, rv.Index(i).Interface())
			if err != nil {
				return nil, errors.Wrap(errors.PhaseEncode, errors.KindConversion, err,
					"element "+strconv.Itoa(i))
			}
			if err := cell.SetCell(i, el); err != nil {
				return nil, err
			}
		}
		return cell, nil

	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return structFromPairs(m, func(v any) (*mx.Array, error) { return fromAny(r, v) })
		}
	}

	return nil, errors.Unsupported(errors.PhaseEncode,
		"no converter registered for type "+reflect.TypeOf(v).String())
}

func fromScalar(class mx.ClassID, fill func(*mx.Array)) (*mx.Array, error) {
	a, err := mx.NewNumeric(class, 1, 1)
	if err != nil {
		return nil, err
	}
	fill(a)
	return a, nil
}

func fromNumericSlice(class mx.ClassID, n int, fill func(*mx.Array)) (*mx.Array, error) {
	a, err := mx.NewNumeric(class, sliceRows(n), n)
	if err != nil {
		return nil, err
	}
	fill(a)
	return a, nil
}

// sliceRows gives native slices the foreign runtime's row-vector shape,
// keeping zero-length values 0x0.
func sliceRows(n int) int {
	if n == 0 {
		return 0
	}
	return 1
}

// structFromPairs builds a scalar struct array from string-keyed values.
// Field order is sorted: Go maps carry no insertion order.
func structFromPairs[V any](m map[string]V, conv func(V) (*mx.Array, error)) (*mx.Array, error) {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	s, err := mx.NewStruct(fields...)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		v, err := conv(m[f])
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindConversion, err, "field "+f)
		}
		if err := s.SetField(f, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

