package mx

import (
	"github.com/wippyai/mex-bridge/errors"
)

// FieldNames returns the field names of a struct array in insertion order.
func (a *Array) FieldNames() []string {
	if a == nil || a.class != ClassStruct {
		return nil
	}
	return append([]string(nil), a.fields...)
}

// NumFields returns the number of fields of a struct array.
func (a *Array) NumFields() int {
	if a == nil {
		return 0
	}
	return len(a.fields)
}

// HasField reports whether the struct array defines the named field.
func (a *Array) HasField(name string) bool {
	return a.fieldIndex(name) >= 0
}

func (a *Array) fieldIndex(name string) int {
	if a == nil || a.class != ClassStruct {
		return -1
	}
	for i, f := range a.fields {
		if f == name {
			return i
		}
	}
	return -1
}

func (a *Array) checkField(phase errors.Phase, name string, record int) (int, error) {
	if a == nil || a.class != ClassStruct {
		return 0, errors.Conversion(phase, nil, "struct field", a.Class().String())
	}
	fi := a.fieldIndex(name)
	if fi < 0 {
		return 0, errors.FieldUnknown(phase, nil, name)
	}
	if record < 0 || record >= len(a.records) {
		return 0, errors.Index(phase, []string{name}, record, len(a.records))
	}
	return fi, nil
}

// Field returns the named field of the first record. A nil result is an
// empty field.
func (a *Array) Field(name string) (*Array, error) {
	return a.FieldIndexed(name, 0)
}

// FieldIndexed returns the named field of the given record.
func (a *Array) FieldIndexed(name string, record int) (*Array, error) {
	fi, err := a.checkField(errors.PhaseDecode, name, record)
	if err != nil {
		return nil, err
	}
	return a.records[record][fi], nil
}

// SetField replaces the named field of the first record. The struct array
// takes ownership of v.
func (a *Array) SetField(name string, v *Array) error {
	return a.SetFieldIndexed(name, 0, v)
}

// SetFieldIndexed replaces the named field of the given record.
func (a *Array) SetFieldIndexed(name string, record int, v *Array) error {
	fi, err := a.checkField(errors.PhaseEncode, name, record)
	if err != nil {
		return err
	}
	a.records[record][fi] = v
	return nil
}
