package system

import (
	"time"

	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
)

// System is the interface every ECS system implements. Run is called once per
// tick with shared access to the entity store, the component registry, and
// the event bus.
type System interface {
	Run(store *ecs.EntityStore, reg *ecs.Registry, bus *event.Bus, dt time.Duration)
}

// Func adapts a plain function to System.
type Func func(store *ecs.EntityStore, reg *ecs.Registry, bus *event.Bus, dt time.Duration)

func (f Func) Run(store *ecs.EntityStore, reg *ecs.Registry, bus *event.Bus, dt time.Duration) {
	f(store, reg, bus, dt)
}
