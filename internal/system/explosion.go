package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	"go.uber.org/zap"
)

// Tuning supplies explosion parameters per exploding radius.
// *scripting.Engine implements it.
type Tuning interface {
	ParticleCount(radius float64) int
	ParticleSpeed(radius float64) float64
	ParticleDecay(radius float64) float64
}

// ExplosionSystem destroys collided circles and replaces each with a burst of
// particles. Collision events only enqueue handles; destruction happens in
// Run, after the detector has finished iterating. Handles repeated within a
// tick, or already destroyed, are skipped.
type ExplosionSystem struct {
	queue    *ecs.DestroyQueue
	tuning   Tuning
	rng      *rand.Rand
	log      *zap.Logger
	exploded uint64
}

// NewExplosionSystem subscribes the system to event.Collision on bus.
func NewExplosionSystem(bus *event.Bus, tuning Tuning, rng *rand.Rand, log *zap.Logger) *ExplosionSystem {
	s := &ExplosionSystem{
		queue:  ecs.NewDestroyQueue(),
		tuning: tuning,
		rng:    rng,
		log:    log,
	}
	event.Subscribe[event.Collision](bus, s)
	return s
}

// Receive queues both parties. It must not touch storage.
func (s *ExplosionSystem) Receive(ev event.Collision) {
	s.queue.Push(ev.A)
	s.queue.Push(ev.B)
}

func (s *ExplosionSystem) Run(store *ecs.EntityStore, reg *ecs.Registry, bus *event.Bus, _ time.Duration) {
	if s.queue.Len() == 0 {
		return
	}
	n := s.queue.Flush(store, func(e ecs.Entity) {
		s.burst(store, reg, bus, e)
	})
	s.exploded += uint64(n)
}

// burst runs just before e is destroyed, while its components are readable.
func (s *ExplosionSystem) burst(store *ecs.EntityStore, reg *ecs.Registry, bus *event.Bus, e ecs.Entity) {
	body, err := ecs.Get[component.Body](reg, e)
	if err != nil {
		s.log.Warn("exploding entity has no body", zap.Error(err))
		return
	}
	shape, err := ecs.Get[component.Shape](reg, e)
	if err != nil {
		s.log.Warn("exploding entity has no shape", zap.Error(err))
		return
	}

	count := s.tuning.ParticleCount(shape.Radius)
	speed := s.tuning.ParticleSpeed(shape.Radius)
	decay := s.tuning.ParticleDecay(shape.Radius)
	origin := body.Position
	color := shape.Color
	radius := math.Max(1, shape.Radius/4)

	event.Emit(bus, event.Explosion{
		Entity:    e,
		X:         origin.X,
		Y:         origin.Y,
		Radius:    shape.Radius,
		Particles: count,
	})

	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * (float64(i) + s.rng.Float64()) / float64(count)
		v := speed * (0.5 + 0.5*s.rng.Float64())
		p := store.Create()
		if _, err := ecs.Register(reg, p, component.Body{
			Position: origin,
			Velocity: component.Vector2{X: math.Cos(angle) * v, Y: math.Sin(angle) * v},
		}); err != nil {
			s.log.Warn("particle body", zap.Error(err))
			continue
		}
		if _, err := ecs.Register(reg, p, component.Particle{
			Color:     color,
			Radius:    radius,
			Alpha:     1,
			DecayRate: decay,
		}); err != nil {
			s.log.Warn("particle", zap.Error(err))
		}
	}
}

// Exploded returns the number of circles destroyed so far.
func (s *ExplosionSystem) Exploded() uint64 { return s.exploded }

// Pending returns the number of queued handles awaiting the next Run.
func (s *ExplosionSystem) Pending() int { return s.queue.Len() }
