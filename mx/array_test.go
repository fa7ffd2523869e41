package mx

import (
	"errors"
	"testing"

	mexerr "github.com/wippyai/mex-bridge/errors"
)

func TestClassID_String(t *testing.T) {
	tests := []struct {
		class ClassID
		want  string
	}{
		{ClassDouble, "double"},
		{ClassSingle, "single"},
		{ClassInt8, "int8"},
		{ClassUint64, "uint64"},
		{ClassLogical, "logical"},
		{ClassChar, "char"},
		{ClassCell, "cell"},
		{ClassStruct, "struct"},
		{ClassID(200), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.class.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassID_IsNumeric(t *testing.T) {
	for _, c := range []ClassID{ClassDouble, ClassSingle, ClassInt8, ClassUint8,
		ClassInt16, ClassUint16, ClassInt32, ClassUint32, ClassInt64, ClassUint64} {
		if !c.IsNumeric() {
			t.Errorf("%s should be numeric", c)
		}
	}
	for _, c := range []ClassID{ClassUnknown, ClassLogical, ClassChar, ClassCell, ClassStruct} {
		if c.IsNumeric() {
			t.Errorf("%s should not be numeric", c)
		}
	}
}

func TestNewNumeric_Shape(t *testing.T) {
	a, err := NewNumeric(ClassInt32, 3, 4)
	if err != nil {
		t.Fatalf("NewNumeric error: %v", err)
	}

	if a.Rows() != 3 || a.Cols() != 4 {
		t.Errorf("shape = %dx%d, want 3x4", a.Rows(), a.Cols())
	}
	if a.NumElements() != 12 {
		t.Errorf("NumElements = %d, want 12", a.NumElements())
	}
	for i := 0; i < a.NumElements(); i++ {
		v, err := a.FloatAt(i)
		if err != nil {
			t.Fatalf("FloatAt(%d) error: %v", i, err)
		}
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewNumeric_NonNumericClass(t *testing.T) {
	if _, err := NewNumeric(ClassCell, 1, 1); err == nil {
		t.Error("expected error for non-numeric class")
	}
	if _, err := NewNumeric(ClassDouble, -1, 2); err == nil {
		t.Error("expected error for negative dimensions")
	}
}

func TestIndex_ColumnMajor(t *testing.T) {
	a, err := NewNumeric(ClassDouble, 2, 3)
	if err != nil {
		t.Fatalf("NewNumeric error: %v", err)
	}

	// Column-major: (row, col) -> row + col*rows
	tests := []struct {
		row, col, want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 2, 5},
	}
	for _, tt := range tests {
		i, err := a.Index(tt.row, tt.col)
		if err != nil {
			t.Fatalf("Index(%d,%d) error: %v", tt.row, tt.col, err)
		}
		if i != tt.want {
			t.Errorf("Index(%d,%d) = %d, want %d", tt.row, tt.col, i, tt.want)
		}
	}

	if _, err := a.Index(2, 0); err == nil {
		t.Error("expected error for row out of bounds")
	}
	if _, err := a.Index(0, 3); err == nil {
		t.Error("expected error for col out of bounds")
	}
}

func TestNewChar_UTF16(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		units int
	}{
		{"ascii", "hello", 5},
		{"empty", "", 0},
		{"bmp", "héllo", 5},
		{"surrogate pair", "a\U0001F600b", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewChar(tt.text)
			if !a.IsChar() {
				t.Fatal("expected char array")
			}
			if a.Cols() != tt.units {
				t.Errorf("Cols = %d, want %d", a.Cols(), tt.units)
			}
			if a.String() != tt.text {
				t.Errorf("String() = %q, want %q", a.String(), tt.text)
			}
		})
	}
}

func TestNewCell_EmptyElements(t *testing.T) {
	a, err := NewCell(2, 3)
	if err != nil {
		t.Fatalf("NewCell error: %v", err)
	}
	if a.NumElements() != 6 {
		t.Fatalf("NumElements = %d, want 6", a.NumElements())
	}
	for i := 0; i < 6; i++ {
		c, err := a.Cell(i)
		if err != nil {
			t.Fatalf("Cell(%d) error: %v", i, err)
		}
		if c != nil {
			t.Errorf("element %d should be empty", i)
		}
	}

	if _, err := a.Cell(6); err == nil {
		t.Error("expected index error")
	}
}

func TestSetCell(t *testing.T) {
	a, err := NewCell(2, 2)
	if err != nil {
		t.Fatalf("NewCell error: %v", err)
	}

	if err := a.SetCell(1, NewChar("x")); err != nil {
		t.Fatalf("SetCell error: %v", err)
	}
	c, err := a.Cell(1)
	if err != nil {
		t.Fatalf("Cell error: %v", err)
	}
	if c.String() != "x" {
		t.Errorf("cell content = %q, want %q", c.String(), "x")
	}

	if err := a.SetCellRC(1, 1, NewChar("y")); err != nil {
		t.Fatalf("SetCellRC error: %v", err)
	}
	c, err = a.CellRC(1, 1)
	if err != nil {
		t.Fatalf("CellRC error: %v", err)
	}
	if c.String() != "y" {
		t.Errorf("cell content = %q, want %q", c.String(), "y")
	}

	// Cell access on a non-cell array is a conversion error
	n, _ := NewNumeric(ClassDouble, 1, 1)
	if _, err := n.Cell(0); !errors.Is(err, &mexerr.Error{Phase: mexerr.PhaseDecode, Kind: mexerr.KindConversion}) {
		t.Errorf("expected conversion error, got %v", err)
	}
}

func TestNewStruct_Fields(t *testing.T) {
	a, err := NewStruct("name", "value", "weight")
	if err != nil {
		t.Fatalf("NewStruct error: %v", err)
	}

	if !a.IsStruct() || !a.IsScalar() {
		t.Fatal("expected scalar struct array")
	}
	names := a.FieldNames()
	want := []string{"name", "value", "weight"}
	if len(names) != len(want) {
		t.Fatalf("FieldNames = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field %d = %q, want %q (insertion order)", i, names[i], want[i])
		}
	}

	for _, f := range want {
		v, err := a.Field(f)
		if err != nil {
			t.Fatalf("Field(%q) error: %v", f, err)
		}
		if v != nil {
			t.Errorf("field %q should be empty", f)
		}
	}
}

func TestNewStruct_DuplicateField(t *testing.T) {
	if _, err := NewStruct("a", "b", "a"); err == nil {
		t.Error("expected error for duplicate field")
	}
	if _, err := NewStruct("a", ""); err == nil {
		t.Error("expected error for empty field name")
	}
}

func TestStruct_SetField(t *testing.T) {
	a, err := NewStructMatrix(1, 2, "id")
	if err != nil {
		t.Fatalf("NewStructMatrix error: %v", err)
	}

	if err := a.SetFieldIndexed("id", 1, NewChar("second")); err != nil {
		t.Fatalf("SetFieldIndexed error: %v", err)
	}
	v, err := a.FieldIndexed("id", 1)
	if err != nil {
		t.Fatalf("FieldIndexed error: %v", err)
	}
	if v.String() != "second" {
		t.Errorf("field = %q, want %q", v.String(), "second")
	}

	if err := a.SetField("missing", NewChar("x")); err == nil {
		t.Error("expected error for unknown field")
	}
	if err := a.SetFieldIndexed("id", 2, NewChar("x")); err == nil {
		t.Error("expected error for record out of range")
	}
}

func TestNewComplex(t *testing.T) {
	a, err := NewComplex(ClassDouble, 1, 2)
	if err != nil {
		t.Fatalf("NewComplex error: %v", err)
	}
	if !a.IsComplex() {
		t.Fatal("expected complex array")
	}

	if err := a.SetFloatAt(0, 1.5); err != nil {
		t.Fatalf("SetFloatAt error: %v", err)
	}
	if err := a.SetImagAt(0, -2.5); err != nil {
		t.Fatalf("SetImagAt error: %v", err)
	}
	im, err := a.ImagAt(0)
	if err != nil {
		t.Fatalf("ImagAt error: %v", err)
	}
	if im != -2.5 {
		t.Errorf("imag = %v, want -2.5", im)
	}

	if _, err := NewComplex(ClassInt32, 1, 1); err == nil {
		t.Error("integer classes cannot be complex")
	}
}

func TestFloatAt_Truncation(t *testing.T) {
	a, err := NewNumeric(ClassInt16, 1, 1)
	if err != nil {
		t.Fatalf("NewNumeric error: %v", err)
	}
	if err := a.SetFloatAt(0, 3.9); err != nil {
		t.Fatalf("SetFloatAt error: %v", err)
	}
	v, err := a.FloatAt(0)
	if err != nil {
		t.Fatalf("FloatAt error: %v", err)
	}
	if v != 3 {
		t.Errorf("truncation: got %v, want 3", v)
	}
}

func TestClone_DeepCopy(t *testing.T) {
	a, err := NewCell(1, 2)
	if err != nil {
		t.Fatalf("NewCell error: %v", err)
	}
	inner, _ := NewNumeric(ClassDouble, 1, 1)
	inner.SetFloatAt(0, 7)
	a.SetCell(0, inner)
	a.SetCell(1, NewChar("txt"))

	dup := a.Clone()
	inner.SetFloatAt(0, 99)

	c, err := dup.Cell(0)
	if err != nil {
		t.Fatalf("Cell error: %v", err)
	}
	v, _ := c.FloatAt(0)
	if v != 7 {
		t.Errorf("clone should be independent: got %v, want 7", v)
	}
}

func TestEmpty(t *testing.T) {
	a := Empty()
	if !a.IsEmpty() || a.Class() != ClassDouble {
		t.Errorf("Empty() = %s %dx%d, want 0x0 double", a.Class(), a.Rows(), a.Cols())
	}
}

func TestString_Description(t *testing.T) {
	a, _ := NewNumeric(ClassSingle, 2, 3)
	if a.String() != "[2x3 single]" {
		t.Errorf("String() = %q", a.String())
	}
	var nilArr *Array
	if nilArr.String() != "[]" {
		t.Errorf("nil String() = %q", nilArr.String())
	}
}
