package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	"github.com/l1jgo/blastsim/internal/data"
	"go.uber.org/zap"
)

// SpawnSystem tops the world up to the scenario's population of colliding
// circles, at most SpawnBurst per tick. Runs first.
type SpawnSystem struct {
	scenario *data.Scenario
	width    float64
	height   float64
	rng      *rand.Rand
	log      *zap.Logger
	spawned  uint64
}

func NewSpawnSystem(sc *data.Scenario, width, height float64, rng *rand.Rand, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{scenario: sc, width: width, height: height, rng: rng, log: log}
}

func (s *SpawnSystem) Run(store *ecs.EntityStore, reg *ecs.Registry, _ *event.Bus, _ time.Duration) {
	need := s.scenario.Population - ecs.Count[component.Collidable](reg)
	if need > s.scenario.SpawnBurst {
		need = s.scenario.SpawnBurst
	}
	for i := 0; i < need; i++ {
		if err := s.spawn(store, reg); err != nil {
			s.log.Warn("spawn failed", zap.Error(err))
			return
		}
	}
}

func (s *SpawnSystem) spawn(store *ecs.EntityStore, reg *ecs.Registry) error {
	radius := s.scenario.Radius.Lerp(s.rng.Float64())
	pos := component.Vector2{
		X: s.within(radius, s.width),
		Y: s.within(radius, s.height),
	}
	angle := s.rng.Float64() * 2 * math.Pi
	speed := s.scenario.Speed.Lerp(s.rng.Float64())
	vel := component.Vector2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
	color := s.scenario.Palette[s.rng.Intn(len(s.scenario.Palette))]

	e := store.Create()
	if _, err := ecs.Register(reg, e, component.Body{Position: pos, Velocity: vel}); err != nil {
		return err
	}
	if _, err := ecs.Register(reg, e, component.Shape{Radius: radius, Color: color}); err != nil {
		return err
	}
	if _, err := ecs.Register(reg, e, component.Collidable{Radius: radius}); err != nil {
		return err
	}
	s.spawned++
	return nil
}

// within picks a coordinate that keeps a circle of radius r inside [0, extent].
// Circles larger than the world are centred.
func (s *SpawnSystem) within(r, extent float64) float64 {
	if 2*r >= extent {
		return extent / 2
	}
	return r + s.rng.Float64()*(extent-2*r)
}

// Spawned returns the total number of circles created.
func (s *SpawnSystem) Spawned() uint64 { return s.spawned }
