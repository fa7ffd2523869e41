package convert

import (
	"errors"
	"testing"

	mexerr "github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

type point struct{ X, Y float64 }

func registerPoint(t *testing.T, r *Registry) {
	t.Helper()
	err := RegisterIn(r,
		func(p point) (*mx.Array, error) {
			return From(map[string]float64{"x": p.X, "y": p.Y})
		},
		func(a *mx.Array) (point, error) {
			x, err := a.Field("x")
			if err != nil {
				return point{}, err
			}
			y, err := a.Field("y")
			if err != nil {
				return point{}, err
			}
			xv, err := To[float64](x)
			if err != nil {
				return point{}, err
			}
			yv, err := To[float64](y)
			if err != nil {
				return point{}, err
			}
			return point{X: xv, Y: yv}, nil
		})
	if err != nil {
		t.Fatalf("RegisterIn error: %v", err)
	}
}

func TestRegistry_CustomType(t *testing.T) {
	r := NewRegistry()
	registerPoint(t, r)

	p := point{X: 1.5, Y: -2}
	a, err := r.From(p)
	if err != nil {
		t.Fatalf("From error: %v", err)
	}
	if !a.IsStruct() {
		t.Fatalf("class = %s, want struct", a.Class())
	}

	got, err := ToIn[point](r, a)
	if err != nil {
		t.Fatalf("ToIn error: %v", err)
	}
	if got != p {
		t.Errorf("round trip: got %+v, want %+v", got, p)
	}
}

func TestRegistry_SliceOfCustom(t *testing.T) {
	r := NewRegistry()
	registerPoint(t, r)

	in := []point{{1, 2}, {3, 4}}
	a, err := r.From(in)
	if err != nil {
		t.Fatalf("From error: %v", err)
	}

	// Non-numeric elements compose as a cell array
	if !a.IsCell() {
		t.Fatalf("class = %s, want cell", a.Class())
	}
	if a.NumElements() != 2 {
		t.Fatalf("elements = %d, want 2", a.NumElements())
	}

	out, err := ToSliceIn[point](r, a)
	if err != nil {
		t.Fatalf("ToSliceIn error: %v", err)
	}
	if out[1] != in[1] {
		t.Errorf("element 1 = %+v, want %+v", out[1], in[1])
	}
}

func TestRegistry_HalfPairRejected(t *testing.T) {
	r := NewRegistry()

	err := RegisterIn[point](r, nil, func(a *mx.Array) (point, error) { return point{}, nil })
	if !errors.Is(err, &mexerr.Error{Phase: mexerr.PhaseEncode, Kind: mexerr.KindInvalidInput}) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestRegistry_Frozen(t *testing.T) {
	r := NewRegistry()
	registerPoint(t, r)
	r.Freeze()

	err := RegisterIn(r,
		func(v int) (*mx.Array, error) { return From(v) },
		func(a *mx.Array) (int, error) { return To[int](a) })
	if !errors.Is(err, &mexerr.Error{Phase: mexerr.PhaseEncode, Kind: mexerr.KindRegistration}) {
		t.Errorf("expected registration error, got %v", err)
	}
}

func TestRegistry_UnregisteredFallsBack(t *testing.T) {
	r := NewRegistry()

	// Builtin conversions work without any registration.
	a, err := r.From(3.5)
	if err != nil {
		t.Fatalf("From error: %v", err)
	}
	v, err := ToIn[float64](r, a)
	if err != nil {
		t.Fatalf("ToIn error: %v", err)
	}
	if v != 3.5 {
		t.Errorf("got %v, want 3.5", v)
	}
}
