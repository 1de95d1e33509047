package ecs

// World is the top-level ECS container. It owns the entity store, the component
// registry, and a deferred destruction queue flushed by CleanupSystem each tick.
type World struct {
	store        *EntityStore
	registry     *Registry
	destroyQueue *DestroyQueue
}

func NewWorld() *World {
	registry := NewRegistry()
	return &World{
		store:        NewEntityStore(registry),
		registry:     registry,
		destroyQueue: NewDestroyQueue(),
	}
}

func (w *World) Store() *EntityStore { return w.store }
func (w *World) Registry() *Registry { return w.registry }

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(e Entity) {
	w.destroyQueue.Push(e)
}

// FlushDestroyQueue destroys all queued entities that are still live.
// Called by CleanupSystem at the end of each tick.
func (w *World) FlushDestroyQueue() int {
	return w.destroyQueue.Flush(w.store, nil)
}

// DestroyQueue records handles during event dispatch so the owner can destroy
// them later, outside any iteration. Repeated and stale handles are skipped
// at flush time.
type DestroyQueue struct {
	pending []Entity
}

func NewDestroyQueue() *DestroyQueue {
	return &DestroyQueue{pending: make([]Entity, 0, 64)}
}

func (q *DestroyQueue) Push(e Entity) {
	q.pending = append(q.pending, e)
}

func (q *DestroyQueue) Len() int {
	return len(q.pending)
}

// Flush destroys each queued entity that is still live, calling before (if
// non-nil) just ahead of the destroy so the caller can still read its
// components. Returns the number of entities destroyed.
func (q *DestroyQueue) Flush(store *EntityStore, before func(Entity)) int {
	n := 0
	for _, e := range q.pending {
		if !store.IsValid(e) {
			continue // duplicate or destroyed elsewhere
		}
		if before != nil {
			before(e)
		}
		if store.Destroy(e) == nil {
			n++
		}
	}
	q.pending = q.pending[:0]
	return n
}
