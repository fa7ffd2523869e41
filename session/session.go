// Package session keeps native instances alive across calls behind opaque
// uint64 handles carried through the value boundary.
package session

import (
	"sync"

	"github.com/wippyai/mex-bridge/convert"
	"github.com/wippyai/mex-bridge/errors"
	"github.com/wippyai/mex-bridge/mx"
)

// Handle identifies a native instance across the value boundary.
type Handle uint64

// Dropper is implemented by instances that need cleanup when destroyed.
type Dropper interface {
	Drop()
}

// Registry keeps native instances alive between calls, addressed by opaque
// handles. Handles are monotonic and never reused, so a destroyed handle
// stays invalid for the life of the registry.
type Registry[T any] struct {
	mu   sync.RWMutex
	next Handle
	live map[Handle]T
}

// NewRegistry creates an empty instance registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		next: 1,
		live: make(map[Handle]T),
	}
}

// Create stores an instance and returns its handle.
func (r *Registry[T]) Create(v T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	r.next++
	r.live[h] = v
	return h
}

// Get retrieves an instance. An unknown or destroyed handle is a handle
// error.
func (r *Registry[T]) Get(h Handle) (T, error) {
	r.mu.RLock()
	v, ok := r.live[h]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, errors.Handle(uint64(h))
	}
	return v, nil
}

// Destroy removes an instance, running its Drop hook if it has one.
func (r *Registry[T]) Destroy(h Handle) error {
	r.mu.Lock()
	v, ok := r.live[h]
	if ok {
		delete(r.live, h)
	}
	r.mu.Unlock()

	if !ok {
		return errors.Handle(uint64(h))
	}
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
	return nil
}

// Len returns the number of live instances.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.live)
}

// Clear destroys every live instance.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	live := r.live
	r.live = make(map[Handle]T)
	r.mu.Unlock()

	for _, v := range live {
		if d, ok := any(v).(Dropper); ok {
			d.Drop()
		}
	}
}

// FromHandle moves a handle across the value boundary as a 1x1 uint64
// array.
func FromHandle(h Handle) (*mx.Array, error) {
	return convert.From(uint64(h))
}

// ToHandle reads a handle back from a scalar numeric array.
func ToHandle(a *mx.Array) (Handle, error) {
	v, err := convert.To[uint64](a)
	if err != nil {
		return 0, err
	}
	return Handle(v), nil
}
