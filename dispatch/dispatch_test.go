package dispatch

import (
	"context"
	goerrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/mex-bridge/call"
	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	err := tbl.Register("add", 1, func(out *call.Results, in []*mx.Array) error {
		b, err := call.Bind(in, 2)
		if err != nil {
			return err
		}
		x, err := call.Get[float64](b, 0)
		if err != nil {
			return err
		}
		y, err := call.Get[float64](b, 1)
		if err != nil {
			return err
		}
		return call.Set(out, 0, x+y)
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	return tbl
}

func ins(t *testing.T, vs ...any) []*mx.Array {
	t.Helper()
	out := make([]*mx.Array, len(vs))
	for i, v := range vs {
		a, err := convert.From(v)
		if err != nil {
			t.Fatalf("From(%v) error: %v", v, err)
		}
		out[i] = a
	}
	return out
}

func TestInvoke(t *testing.T) {
	tbl := newTestTable(t)

	slots, err := tbl.Invoke(context.Background(), 1, ins(t, "add", 2.0, 3.0))
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(slots))
	}
	sum, err := convert.To[float64](slots[0])
	if err != nil {
		t.Fatalf("To error: %v", err)
	}
	if sum != 5 {
		t.Errorf("add(2,3) = %v, want 5", sum)
	}
}

func TestInvoke_UnknownOperation(t *testing.T) {
	tbl := newTestTable(t)

	_, err := tbl.Invoke(context.Background(), 1, ins(t, "mul", 2.0, 3.0))
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseDispatch, Kind: errors.KindNotFound}) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	// The message names the registered set
	if got := err.Error(); !strings.Contains(got, "add") {
		t.Errorf("error should list registered operations, got %q", got)
	}
}

func TestInvoke_NonCharSelector(t *testing.T) {
	tbl := newTestTable(t)

	if _, err := tbl.Invoke(context.Background(), 1, ins(t, 1.0)); err == nil {
		t.Error("expected error for numeric selector")
	}
	if _, err := tbl.Invoke(context.Background(), 1, nil); err == nil {
		t.Error("expected error for empty input vector")
	}
}

func TestInvoke_TooManyOutputs(t *testing.T) {
	tbl := newTestTable(t)

	_, err := tbl.Invoke(context.Background(), 2, ins(t, "add", 2.0, 3.0))
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseOutput, Kind: errors.KindIndex}) {
		t.Errorf("expected index error, got %v", err)
	}
}

func TestInvoke_HandlerErrorPropagates(t *testing.T) {
	tbl := newTestTable(t)

	_, err := tbl.Invoke(context.Background(), 1, ins(t, "add", 2.0))
	var sm *errors.SignatureMismatchError
	if !goerrors.As(err, &sm) {
		t.Errorf("expected signature mismatch from handler, got %v", err)
	}
}

func TestInvoke_Cancelled(t *testing.T) {
	tbl := newTestTable(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tbl.Invoke(ctx, 1, ins(t, "add", 2.0, 3.0)); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	tbl := newTestTable(t)

	err := tbl.Register("add", 1, func(out *call.Results, in []*mx.Array) error { return nil })
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseDispatch, Kind: errors.KindRegistration}) {
		t.Errorf("expected registration error, got %v", err)
	}
}

func TestOperations_Order(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"c", "a", "b"} {
		if err := tbl.Register(name, 0, func(out *call.Results, in []*mx.Array) error { return nil }); err != nil {
			t.Fatalf("Register(%s) error: %v", name, err)
		}
	}
	ops := tbl.Operations()
	if len(ops) != 3 || ops[0] != "c" || ops[1] != "a" || ops[2] != "b" {
		t.Errorf("operations = %v, want registration order [c a b]", ops)
	}
}
