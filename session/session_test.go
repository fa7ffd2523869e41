package session

import (
	goerrors "errors"
	"testing"

	"github.com/wippyai/mex-bridge/errors"
)

type counter struct {
	drops *int
}

func (c counter) Drop() { *c.drops++ }

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry[string]()

	h1 := r.Create("first")
	h2 := r.Create("second")
	if h1 == h2 {
		t.Fatal("handles must be distinct")
	}
	if r.Len() != 2 {
		t.Errorf("len = %d, want 2", r.Len())
	}

	v, err := r.Get(h1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v != "first" {
		t.Errorf("Get = %q, want first", v)
	}

	if err := r.Destroy(h1); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}

	_, err = r.Get(h1)
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseHandle, Kind: errors.KindHandle}) {
		t.Errorf("expected handle error, got %v", err)
	}
	if err := r.Destroy(h1); err == nil {
		t.Error("expected error destroying twice")
	}
}

func TestRegistry_HandlesNeverReused(t *testing.T) {
	r := NewRegistry[int]()

	h1 := r.Create(1)
	if err := r.Destroy(h1); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}

	h2 := r.Create(2)
	if h2 == h1 {
		t.Error("destroyed handle was reused")
	}
	if _, err := r.Get(h1); err == nil {
		t.Error("destroyed handle should stay invalid")
	}
}

func TestRegistry_DropHook(t *testing.T) {
	r := NewRegistry[counter]()
	drops := 0

	h := r.Create(counter{drops: &drops})
	if err := r.Destroy(h); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	if drops != 1 {
		t.Errorf("drops = %d, want 1", drops)
	}

	r.Create(counter{drops: &drops})
	r.Create(counter{drops: &drops})
	r.Clear()
	if drops != 3 {
		t.Errorf("drops = %d, want 3 after Clear", drops)
	}
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0", r.Len())
	}
}

func TestHandle_ValueBoundary(t *testing.T) {
	r := NewRegistry[string]()
	h := r.Create("instance")

	a, err := FromHandle(h)
	if err != nil {
		t.Fatalf("FromHandle error: %v", err)
	}
	if !a.IsScalar() || !a.IsNumeric() {
		t.Fatalf("handle array = %s", a)
	}

	back, err := ToHandle(a)
	if err != nil {
		t.Fatalf("ToHandle error: %v", err)
	}
	if back != h {
		t.Errorf("round trip: got %d, want %d", back, h)
	}

	v, err := r.Get(back)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v != "instance" {
		t.Errorf("Get = %q", v)
	}
}
