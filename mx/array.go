package mx

import (
	"fmt"

	"github.com/wippyai/mex-bridge/errors"
)

// Array is a foreign array value: a shape-carrying tagged union over dense
// numeric matrices, logical matrices, character data, cell arrays and struct
// arrays. Shape is fixed at construction; setters replace element contents
// but never reshape.
type Array struct {
	class ClassID
	rows  int
	cols  int

	data    any       // typed numeric slice per class, column-major
	imag    any       // imaginary component, float classes only
	logical []bool    // ClassLogical
	chars   []uint16  // ClassChar, UTF-16 code units
	cells   []*Array  // ClassCell; nil element = empty
	fields  []string  // ClassStruct, insertion order
	records [][]*Array // ClassStruct; records[rec][fieldIdx], nil = empty
}

func checkDims(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return errors.InvalidInput(errors.PhaseEncode,
			fmt.Sprintf("negative dimensions %dx%d", rows, cols))
	}
	return nil
}

// NewNumeric creates a rows-by-cols dense numeric matrix of the given class
// with all elements zero.
func NewNumeric(class ClassID, rows, cols int) (*Array, error) {
	if !class.IsNumeric() {
		return nil, errors.InvalidInput(errors.PhaseEncode,
			fmt.Sprintf("class %s is not numeric", class))
	}
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}
	return &Array{
		class: class,
		rows:  rows,
		cols:  cols,
		data:  newNumericData(class, rows*cols),
	}, nil
}

// NewComplex creates a complex numeric matrix. Only the float classes carry
// an imaginary component.
func NewComplex(class ClassID, rows, cols int) (*Array, error) {
	if !class.IsFloat() {
		return nil, errors.InvalidInput(errors.PhaseEncode,
			fmt.Sprintf("class %s cannot be complex", class))
	}
	a, err := NewNumeric(class, rows, cols)
	if err != nil {
		return nil, err
	}
	a.imag = newNumericData(class, rows*cols)
	return a, nil
}

// NewLogical creates a rows-by-cols logical matrix, all elements false.
func NewLogical(rows, cols int) (*Array, error) {
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}
	return &Array{
		class:   ClassLogical,
		rows:    rows,
		cols:    cols,
		logical: make([]bool, rows*cols),
	}, nil
}

// NewChar creates a 1-by-n character array from native text, where n is the
// number of UTF-16 code units.
func NewChar(s string) *Array {
	units := encodeUTF16(s)
	rows := 1
	if len(units) == 0 {
		rows = 0
	}
	return &Array{
		class: ClassChar,
		rows:  rows,
		cols:  len(units),
		chars: units,
	}
}

// NewCell creates a rows-by-cols cell array with every element empty.
func NewCell(rows, cols int) (*Array, error) {
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}
	return &Array{
		class: ClassCell,
		rows:  rows,
		cols:  cols,
		cells: make([]*Array, rows*cols),
	}, nil
}

// NewStruct creates a scalar (1x1) struct array with the given fields, each
// initially empty. Field names must be unique.
func NewStruct(fields ...string) (*Array, error) {
	return NewStructMatrix(1, 1, fields...)
}

// NewStructMatrix creates a rows-by-cols struct array with the given fields.
func NewStructMatrix(rows, cols int, fields ...string) (*Array, error) {
	if err := checkDims(rows, cols); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == "" {
			return nil, errors.InvalidInput(errors.PhaseEncode, "empty field name")
		}
		if seen[f] {
			return nil, errors.InvalidInput(errors.PhaseEncode,
				fmt.Sprintf("duplicate field name %q", f))
		}
		seen[f] = true
	}
	records := make([][]*Array, rows*cols)
	for i := range records {
		records[i] = make([]*Array, len(fields))
	}
	return &Array{
		class:   ClassStruct,
		rows:    rows,
		cols:    cols,
		fields:  append([]string(nil), fields...),
		records: records,
	}, nil
}

// Empty returns a 0x0 double matrix, the foreign runtime's empty value.
func Empty() *Array {
	return &Array{class: ClassDouble, data: []float64{}}
}

// Class returns the variant tag.
func (a *Array) Class() ClassID {
	if a == nil {
		return ClassUnknown
	}
	return a.class
}

func (a *Array) Rows() int {
	if a == nil {
		return 0
	}
	return a.rows
}

func (a *Array) Cols() int {
	if a == nil {
		return 0
	}
	return a.cols
}

// NumElements returns rows*cols.
func (a *Array) NumElements() int {
	if a == nil {
		return 0
	}
	return a.rows * a.cols
}

func (a *Array) IsEmpty() bool   { return a.NumElements() == 0 }
func (a *Array) IsScalar() bool  { return a.NumElements() == 1 }
func (a *Array) IsNumeric() bool { return a != nil && a.class.IsNumeric() }
func (a *Array) IsLogical() bool { return a != nil && a.class == ClassLogical }
func (a *Array) IsChar() bool    { return a != nil && a.class == ClassChar }
func (a *Array) IsCell() bool    { return a != nil && a.class == ClassCell }
func (a *Array) IsStruct() bool  { return a != nil && a.class == ClassStruct }

// IsComplex reports whether the array carries an imaginary component.
func (a *Array) IsComplex() bool { return a != nil && a.imag != nil }

// Index converts (row, col) to the column-major linear index.
func (a *Array) Index(row, col int) (int, error) {
	if a == nil || row < 0 || row >= a.rows || col < 0 || col >= a.cols {
		return 0, errors.New(errors.PhaseDecode, errors.KindIndex).
			Detail("subscript (%d,%d) out of bounds for %dx%d array", row, col, a.Rows(), a.Cols()).
			Build()
	}
	return row + col*a.rows, nil
}

// String returns the text content for char arrays and a short shape
// description for everything else.
func (a *Array) String() string {
	if a == nil {
		return "[]"
	}
	if a.class == ClassChar {
		return decodeUTF16(a.chars)
	}
	return fmt.Sprintf("[%dx%d %s]", a.rows, a.cols, a.class)
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	if a == nil {
		return nil
	}
	dup := &Array{class: a.class, rows: a.rows, cols: a.cols}
	dup.data = cloneNumericData(a.data)
	dup.imag = cloneNumericData(a.imag)
	if a.logical != nil {
		dup.logical = append([]bool(nil), a.logical...)
	}
	if a.chars != nil {
		dup.chars = append([]uint16(nil), a.chars...)
	}
	if a.cells != nil {
		dup.cells = make([]*Array, len(a.cells))
		for i, c := range a.cells {
			dup.cells[i] = c.Clone()
		}
	}
	if a.fields != nil {
		dup.fields = append([]string(nil), a.fields...)
	}
	if a.records != nil {
		dup.records = make([][]*Array, len(a.records))
		for i, rec := range a.records {
			dup.records[i] = make([]*Array, len(rec))
			for j, v := range rec {
				dup.records[i][j] = v.Clone()
			}
		}
	}
	return dup
}

// Logicals returns the backing element slice of a logical matrix.
func (a *Array) Logicals() []bool {
	if a == nil {
		return nil
	}
	return a.logical
}

// Chars returns the backing UTF-16 code units of a char array.
func (a *Array) Chars() []uint16 {
	if a == nil {
		return nil
	}
	return a.chars
}

// Data returns the backing typed numeric slice ([]float64, []int32, ...)
// or nil for non-numeric arrays.
func (a *Array) Data() any {
	if a == nil {
		return nil
	}
	return a.data
}

// ImagData returns the backing imaginary slice, nil for real arrays.
func (a *Array) ImagData() any {
	if a == nil {
		return nil
	}
	return a.imag
}
