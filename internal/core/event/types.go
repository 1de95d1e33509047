package event

import "github.com/l1jgo/blastsim/internal/core/ecs"

// Collision reports that the circles of A and B overlap this tick.
// The same pair may be reported more than once per tick.
type Collision struct {
	A ecs.Entity
	B ecs.Entity
}

// Explosion is emitted just before a collided entity is destroyed.
type Explosion struct {
	Entity    ecs.Entity
	X, Y      float64
	Radius    float64
	Particles int
}
