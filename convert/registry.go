package convert

import (
	"reflect"
	"sync"

	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Registry is a type-indexed table of converter pairs. A native type becomes
// convertible in both directions at once; registering only one direction is
// rejected so a type is never half-supported.
//
// Registries are mutable during setup and frozen before serving calls.
type Registry struct {
	mu     sync.RWMutex
	to     map[reflect.Type]func(*mx.Array) (any, error)
	from   map[reflect.Type]func(any) (*mx.Array, error)
	frozen bool
}

// NewRegistry creates an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{
		to:   make(map[reflect.Type]func(*mx.Array) (any, error)),
		from: make(map[reflect.Type]func(any) (*mx.Array, error)),
	}
}

// RegisterIn adds a converter pair for T to a specific registry.
func RegisterIn[T any](r *Registry, from func(T) (*mx.Array, error), to func(*mx.Array) (T, error)) error {
	if from == nil || to == nil {
		return errors.InvalidInput(errors.PhaseEncode,
			"converter pair for "+typeName[T]()+" must register both directions")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Registration(errors.PhaseEncode, typeName[T](),
			errors.InvalidInput(errors.PhaseEncode, "registry is frozen"))
	}

	rt := reflect.TypeFor[T]()
	r.from[rt] = func(v any) (*mx.Array, error) { return from(v.(T)) }
	r.to[rt] = func(a *mx.Array) (any, error) { return to(a) }
	return nil
}

// Freeze makes the registry immutable. Subsequent registrations fail.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) toFor(rt reflect.Type) func(*mx.Array) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.to[rt]
}

func (r *Registry) fromFor(rt reflect.Type) func(any) (*mx.Array, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.from[rt]
}

var defaultRegistry = NewRegistry()

// Register adds a converter pair for T to the package default registry,
// consulted by To/From after the built-in conversions. Call during module
// initialization, then Freeze before serving calls.
func Register[T any](from func(T) (*mx.Array, error), to func(*mx.Array) (T, error)) error {
	return RegisterIn(defaultRegistry, from, to)
}

// Freeze makes the package default registry immutable.
func Freeze() {
	defaultRegistry.Freeze()
}
