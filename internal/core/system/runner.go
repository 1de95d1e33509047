package system

import (
	"time"

	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	"go.uber.org/zap"
)

// Scheduler executes systems in registration order each tick. Order is fixed
// once registered; nothing is skipped or sorted.
type Scheduler struct {
	systems []System
	world   *ecs.World
	bus     *event.Bus
	log     *zap.Logger
	tick    uint64
}

func NewScheduler(world *ecs.World, bus *event.Bus, log *zap.Logger) *Scheduler {
	return &Scheduler{
		systems: make([]System, 0, 16),
		world:   world,
		bus:     bus,
		log:     log,
	}
}

func (s *Scheduler) Register(sys System) {
	s.systems = append(s.systems, sys)
}

// Advance runs every registered system once, in order, with the same dt.
func (s *Scheduler) Advance(dt time.Duration) {
	store, reg := s.world.Store(), s.world.Registry()
	for _, sys := range s.systems {
		sys.Run(store, reg, s.bus, dt)
	}
	s.tick++
	if s.log != nil && s.log.Core().Enabled(zap.DebugLevel) {
		s.log.Debug("tick",
			zap.Uint64("tick", s.tick),
			zap.Int("entities", store.Len()),
		)
	}
}

// Tick returns the number of completed Advance calls.
func (s *Scheduler) Tick() uint64 { return s.tick }

// Len returns the number of registered systems.
func (s *Scheduler) Len() int { return len(s.systems) }
