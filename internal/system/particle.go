package system

import (
	"time"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
)

// ParticleSystem fades particles and hands spent ones to the world's
// destroy queue; CleanupSystem removes them at tick end.
type ParticleSystem struct {
	world *ecs.World
}

func NewParticleSystem(world *ecs.World) *ParticleSystem {
	return &ParticleSystem{world: world}
}

func (s *ParticleSystem) Run(_ *ecs.EntityStore, reg *ecs.Registry, _ *event.Bus, dt time.Duration) {
	particles := ecs.StoreOf[component.Particle](reg)
	if particles == nil {
		return
	}
	secs := dt.Seconds()
	particles.Each(func(e ecs.Entity, p *component.Particle) {
		if p.Alpha <= 0 {
			return // already marked
		}
		p.Alpha -= p.DecayRate * secs
		if p.Alpha <= 0 {
			p.Alpha = 0
			s.world.MarkForDestruction(e)
		}
	})
}
