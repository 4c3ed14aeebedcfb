// Package asset provides typed registries for shared scene resources such as meshes
// and materials. Resources are referenced through opaque handles.
package asset

import (
	"fmt"
	"sync"
)

// Handle is an opaque reference to a value held in a Store. The zero Handle is invalid.
type Handle[T any] struct {
	id uint64
}

// IsValid reports whether the handle was issued by a Store.
func (h Handle[T]) IsValid() bool {
	return h.id != 0
}

// String implements fmt.Stringer.
func (h Handle[T]) String() string {
	return fmt.Sprintf("asset#%d", h.id)
}

// Store is a registry of values of one type. Handles are never reused.
type Store[T any] interface {
	// Add registers a value and returns its handle.
	//
	// Parameters:
	//   - v: the value to register
	//
	// Returns:
	//   - Handle[T]: the handle for v
	Add(v T) Handle[T]

	// Get returns the value for h.
	//
	// Parameters:
	//   - h: a handle returned by Add
	//
	// Returns:
	//   - T: the value, or the zero value if missing
	//   - bool: true if the handle is registered
	Get(h Handle[T]) (T, bool)

	// MustGet returns the value for h and panics if it is not registered.
	MustGet(h Handle[T]) T

	// Len returns the number of registered values.
	Len() int

	// Each calls fn for every registered value in registration order.
	Each(fn func(h Handle[T], v T))
}

type store[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	values map[uint64]T
	order  []uint64
}

var _ Store[int] = &store[int]{}

// NewStore creates an empty Store.
func NewStore[T any]() Store[T] {
	return &store[T]{
		nextID: 1,
		values: make(map[uint64]T),
	}
}

func (s *store[T]) Add(v T) Handle[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.values[id] = v
	s.order = append(s.order, id)
	return Handle[T]{id: id}
}

func (s *store[T]) Get(h Handle[T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[h.id]
	return v, ok
}

func (s *store[T]) MustGet(h Handle[T]) T {
	v, ok := s.Get(h)
	if !ok {
		panic(fmt.Sprintf("asset: MustGet called with unregistered handle %s", h))
	}
	return v
}

func (s *store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func (s *store[T]) Each(fn func(h Handle[T], v T)) {
	s.mu.RLock()
	ids := append([]uint64(nil), s.order...)
	s.mu.RUnlock()

	for _, id := range ids {
		if v, ok := s.Get(Handle[T]{id: id}); ok {
			fn(Handle[T]{id: id}, v)
		}
	}
}
