package ecs

// Entity encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type Entity uint64

func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

func (e Entity) Index() uint32      { return uint32(e) }
func (e Entity) Generation() uint32 { return uint32(e >> 32) }
func (e Entity) IsZero() bool       { return e == 0 }

// EntityStore manages entity allocation with generational indices and a free
// list. Destroy cascades into the component registry.
type EntityStore struct {
	generations []uint32
	freeList    []uint32
	live        int
	registry    *Registry
}

// NewEntityStore binds the store to registry so that Register and Get can
// check liveness and Destroy can cascade.
func NewEntityStore(registry *Registry) *EntityStore {
	s := &EntityStore{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
		registry:    registry,
	}
	if registry != nil {
		registry.entities = s
	}
	return s
}

// Create hands out a recycled slot if one is free, otherwise a new one.
// Generations start at 1 so the zero Entity is never live.
func (s *EntityStore) Create() Entity {
	s.live++
	if n := len(s.freeList); n > 0 {
		idx := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		return NewEntity(idx, s.generations[idx])
	}
	idx := uint32(len(s.generations))
	s.generations = append(s.generations, 1)
	return NewEntity(idx, 1)
}

// IsValid reports whether e refers to a live entity.
func (s *EntityStore) IsValid(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(s.generations) {
		return false
	}
	return s.generations[idx] == e.Generation()
}

// Destroy invalidates e and strips its components from every pool.
// A stale or already destroyed handle yields ErrInvalidEntity.
func (s *EntityStore) Destroy(e Entity) error {
	if !s.IsValid(e) {
		return invalid(e)
	}
	if s.registry != nil {
		s.registry.RemoveAll(e)
	}
	idx := e.Index()
	s.generations[idx]++
	if s.generations[idx] == 0 {
		s.generations[idx] = 1 // wrapped
	}
	s.freeList = append(s.freeList, idx)
	s.live--
	return nil
}

// Len returns the number of live entities.
func (s *EntityStore) Len() int {
	return s.live
}
