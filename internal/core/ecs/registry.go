package ecs

import (
	"fmt"
	"reflect"
)

// Registry owns one Store per declared component type and supports bulk
// cleanup on entity destroy.
type Registry struct {
	stores   []Removable
	byType   map[reflect.Type]Removable
	entities *EntityStore
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
		byType: make(map[reflect.Type]Removable, 16),
	}
}

// Declare creates the pool for T. Declaring the same type twice returns the
// existing pool.
func Declare[T any](r *Registry) *Store[T] {
	t := reflect.TypeFor[T]()
	if s, ok := r.byType[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	r.byType[t] = s
	r.stores = append(r.stores, s)
	return s
}

// StoreOf returns the pool for T, or nil if T was never declared.
func StoreOf[T any](r *Registry) *Store[T] {
	s, ok := r.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return s.(*Store[T])
}

// Register attaches v to e, replacing any prior value of the same type.
func Register[T any](r *Registry, e Entity, v T) (*T, error) {
	if !r.alive(e) {
		return nil, invalid(e)
	}
	s := StoreOf[T](r)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrUndeclaredComponent, reflect.TypeFor[T]())
	}
	return s.Set(e, v), nil
}

// Get returns a mutable pointer to e's T.
func Get[T any](r *Registry, e Entity) (*T, error) {
	if !r.alive(e) {
		return nil, invalid(e)
	}
	if s := StoreOf[T](r); s != nil {
		if c, ok := s.Get(e); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on entity %d", ErrMissingComponent, reflect.TypeFor[T](), e.Index())
}

// Has reports whether e is live and holds a T.
func Has[T any](r *Registry, e Entity) bool {
	s := StoreOf[T](r)
	return s != nil && r.alive(e) && s.Has(e)
}

// Remove detaches T from e. Removing an absent component is a no-op.
func Remove[T any](r *Registry, e Entity) error {
	if !r.alive(e) {
		return invalid(e)
	}
	if s := StoreOf[T](r); s != nil {
		s.Remove(e)
	}
	return nil
}

// Count returns how many entities hold a T.
func Count[T any](r *Registry) int {
	if s := StoreOf[T](r); s != nil {
		return s.Len()
	}
	return 0
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(e Entity) {
	for _, s := range r.stores {
		s.Remove(e)
	}
}

func (r *Registry) alive(e Entity) bool {
	if r.entities == nil {
		return !e.IsZero()
	}
	return r.entities.IsValid(e)
}
