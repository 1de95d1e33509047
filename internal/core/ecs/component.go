package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(e Entity)
	Has(e Entity) bool
	Len() int
}

// Store is a generic typed store for one component type.
// Values are heap-allocated so pointers survive removal of other entities.
// Iteration follows the dense id list, which keeps order stable between
// mutations.
type Store[T any] struct {
	ids  []Entity
	pos  map[Entity]int
	data map[Entity]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		ids:  make([]Entity, 0, 256),
		pos:  make(map[Entity]int, 256),
		data: make(map[Entity]*T, 256),
	}
}

// Set attaches v to e, replacing any previous value in place.
func (s *Store[T]) Set(e Entity, v T) *T {
	if c, ok := s.data[e]; ok {
		*c = v
		return c
	}
	c := new(T)
	*c = v
	s.data[e] = c
	s.pos[e] = len(s.ids)
	s.ids = append(s.ids, e)
	return c
}

func (s *Store[T]) Get(e Entity) (*T, bool) {
	c, ok := s.data[e]
	return c, ok
}

// Remove swaps the last id into e's slot.
func (s *Store[T]) Remove(e Entity) {
	i, ok := s.pos[e]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i != last {
		moved := s.ids[last]
		s.ids[i] = moved
		s.pos[moved] = i
	}
	s.ids = s.ids[:last]
	delete(s.pos, e)
	delete(s.data, e)
}

func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.data[e]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// Each calls fn for every stored component. fn must not add or remove
// components of this type.
func (s *Store[T]) Each(fn func(Entity, *T)) {
	for _, e := range s.ids {
		fn(e, s.data[e])
	}
}
