package system

import (
	"math"
	"time"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
)

// MovementSystem integrates every Body by dt. Collidable circles are kept
// inside the world by reflecting their velocity at the edges; particles
// drift freely.
type MovementSystem struct {
	width  float64
	height float64
}

func NewMovementSystem(width, height float64) *MovementSystem {
	return &MovementSystem{width: width, height: height}
}

func (s *MovementSystem) Run(_ *ecs.EntityStore, reg *ecs.Registry, _ *event.Bus, dt time.Duration) {
	secs := dt.Seconds()
	if bodies := ecs.StoreOf[component.Body](reg); bodies != nil {
		bodies.Each(func(_ ecs.Entity, b *component.Body) {
			b.Position = b.Position.Add(b.Velocity.Scale(secs))
		})
	}
	ecs.Each2(reg, func(_ ecs.Entity, b *component.Body, c *component.Collidable) {
		b.Position.X, b.Velocity.X = bounce(b.Position.X, b.Velocity.X, c.Radius, s.width)
		b.Position.Y, b.Velocity.Y = bounce(b.Position.Y, b.Velocity.Y, c.Radius, s.height)
	})
}

// bounce clamps p into [r, extent-r] and points v back inside.
func bounce(p, v, r, extent float64) (float64, float64) {
	switch {
	case p-r < 0:
		return math.Min(r, extent/2), math.Abs(v)
	case p+r > extent:
		return math.Max(extent-r, extent/2), -math.Abs(v)
	}
	return p, v
}
