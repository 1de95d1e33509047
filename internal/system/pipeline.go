package system

import (
	"math/rand"

	"github.com/l1jgo/blastsim/internal/collision"
	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	coresys "github.com/l1jgo/blastsim/internal/core/system"
	"github.com/l1jgo/blastsim/internal/data"
	"go.uber.org/zap"
)

// DeclareComponents creates the pool for every component type the
// simulation uses. Call once at startup, before any system runs.
func DeclareComponents(reg *ecs.Registry) {
	ecs.Declare[component.Body](reg)
	ecs.Declare[component.Shape](reg)
	ecs.Declare[component.Collidable](reg)
	ecs.Declare[component.Particle](reg)
}

// Options configures Build.
type Options struct {
	Width    float64
	Height   float64
	CellSize float64
	Scenario *data.Scenario
	Tuning   Tuning
	Rand     *rand.Rand
}

// Pipeline is the wired simulation: world, bus, scheduler, and handles to
// the systems that report statistics.
type Pipeline struct {
	World     *ecs.World
	Bus       *event.Bus
	Scheduler *coresys.Scheduler
	Spawn     *SpawnSystem
	Detector  *collision.Detector
	Explosion *ExplosionSystem
}

// Build declares components and registers the systems in tick order:
// spawn, movement, collision, explosion, particle, cleanup.
func Build(opts Options, log *zap.Logger) *Pipeline {
	world := ecs.NewWorld()
	DeclareComponents(world.Registry())
	bus := event.NewBus()

	p := &Pipeline{
		World:     world,
		Bus:       bus,
		Scheduler: coresys.NewScheduler(world, bus, log),
		Spawn:     NewSpawnSystem(opts.Scenario, opts.Width, opts.Height, opts.Rand, log),
		Detector:  collision.NewDetector(opts.Width, opts.Height, opts.CellSize, log),
		Explosion: NewExplosionSystem(bus, opts.Tuning, opts.Rand, log),
	}
	p.Scheduler.Register(p.Spawn)
	p.Scheduler.Register(NewMovementSystem(opts.Width, opts.Height))
	p.Scheduler.Register(p.Detector)
	p.Scheduler.Register(p.Explosion)
	p.Scheduler.Register(NewParticleSystem(world))
	p.Scheduler.Register(NewCleanupSystem(world))
	return p
}
