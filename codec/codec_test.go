package codec

import (
	"bytes"
	"testing"

	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/mx"
)

func reencode(t *testing.T, a *mx.Array) *mx.Array {
	t.Helper()
	data, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	return back
}

func TestRoundTrip_Numeric(t *testing.T) {
	a, err := convert.FromMatrix([][]int64{{1 << 60, -5}, {7, 0}})
	if err != nil {
		t.Fatalf("FromMatrix error: %v", err)
	}

	back := reencode(t, a)
	if back.Class() != mx.ClassInt64 || back.Rows() != 2 || back.Cols() != 2 {
		t.Fatalf("shape = %s %dx%d", back.Class(), back.Rows(), back.Cols())
	}
	vs, err := convert.ToSlice[int64](back)
	if err != nil {
		t.Fatalf("ToSlice error: %v", err)
	}
	if vs[0] != 1<<60 {
		t.Errorf("element 0 = %d, want %d", vs[0], int64(1)<<60)
	}
}

func TestRoundTrip_UnsignedExact(t *testing.T) {
	a, err := convert.From([]uint64{1 << 63, 3})
	if err != nil {
		t.Fatalf("From error: %v", err)
	}
	back := reencode(t, a)
	vs, err := convert.ToSlice[uint64](back)
	if err != nil {
		t.Fatalf("ToSlice error: %v", err)
	}
	if vs[0] != 1<<63 {
		t.Errorf("element 0 = %d, want %d", vs[0], uint64(1)<<63)
	}
}

func TestRoundTrip_Complex(t *testing.T) {
	a, err := convert.From(complex(1.5, -2.25))
	if err != nil {
		t.Fatalf("From error: %v", err)
	}
	back := reencode(t, a)
	if !back.IsComplex() {
		t.Fatal("complex flag lost")
	}
	c, err := convert.To[complex128](back)
	if err != nil {
		t.Fatalf("To error: %v", err)
	}
	if c != complex(1.5, -2.25) {
		t.Errorf("round trip: got %v", c)
	}
}

func TestRoundTrip_Char(t *testing.T) {
	back := reencode(t, mx.NewChar("grüße \U0001F600"))
	if back.String() != "grüße \U0001F600" {
		t.Errorf("round trip: got %q", back.String())
	}
}

func TestRoundTrip_Logical(t *testing.T) {
	a, err := convert.From([]bool{true, false, true})
	if err != nil {
		t.Fatalf("From error: %v", err)
	}
	back := reencode(t, a)
	vs, err := convert.To[[]bool](back)
	if err != nil {
		t.Fatalf("To error: %v", err)
	}
	if !vs[0] || vs[1] || !vs[2] {
		t.Errorf("round trip: got %v", vs)
	}
}

func TestRoundTrip_NestedCellStruct(t *testing.T) {
	s, err := mx.NewStruct("label", "values")
	if err != nil {
		t.Fatalf("NewStruct error: %v", err)
	}
	if err := s.SetField("label", mx.NewChar("probe")); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	values, err := convert.From([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("From error: %v", err)
	}
	if err := s.SetField("values", values); err != nil {
		t.Fatalf("SetField error: %v", err)
	}

	cell, err := mx.NewCell(1, 2)
	if err != nil {
		t.Fatalf("NewCell error: %v", err)
	}
	if err := cell.SetCell(0, s); err != nil {
		t.Fatalf("SetCell error: %v", err)
	}
	// Element 1 stays empty

	back := reencode(t, cell)
	if !back.IsCell() || back.NumElements() != 2 {
		t.Fatalf("shape = %s", back)
	}

	el0, err := back.Cell(0)
	if err != nil {
		t.Fatalf("Cell error: %v", err)
	}
	label, err := el0.Field("label")
	if err != nil {
		t.Fatalf("Field error: %v", err)
	}
	if label.String() != "probe" {
		t.Errorf("label = %q", label.String())
	}

	el1, err := back.Cell(1)
	if err != nil {
		t.Fatalf("Cell error: %v", err)
	}
	if el1 != nil {
		t.Errorf("empty cell element should stay empty, got %s", el1)
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := convert.From(map[string]float64{"b": 2, "a": 1})
	if err != nil {
		t.Fatalf("From error: %v", err)
	}

	d1, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	d2, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !bytes.Equal(d1, d2) {
		t.Error("canonical encoding should be byte-stable")
	}
}

func TestUnmarshal_Garbage(t *testing.T) {
	if _, err := Unmarshal([]byte{0xff, 0x00, 0x13}); err == nil {
		t.Error("expected error for malformed bytes")
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	back := reencode(t, mx.Empty())
	if !back.IsEmpty() || back.Class() != mx.ClassDouble {
		t.Errorf("empty round trip: %s", back)
	}
}
