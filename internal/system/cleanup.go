package system

import (
	"time"

	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Register it last.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Run(_ *ecs.EntityStore, _ *ecs.Registry, _ *event.Bus, _ time.Duration) {
	s.world.FlushDestroyQueue()
}
