package collision

import (
	"time"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	"go.uber.org/zap"
)

// Detector is the broad-phase + exact circle test system. Each tick it
// rebuilds the grid from every Body+Collidable entity and emits one
// event.Collision per overlapping ordered pair per shared cell.
type Detector struct {
	grid  *Grid
	log   *zap.Logger
	total uint64
}

func NewDetector(width, height, cellSize float64, log *zap.Logger) *Detector {
	g := NewGrid(width, height, cellSize)
	log.Debug("collision grid",
		zap.Int("cols", g.Cols()),
		zap.Int("rows", g.Rows()),
		zap.Float64("cell_size", g.cellSize),
	)
	return &Detector{grid: g, log: log}
}

func (d *Detector) Run(_ *ecs.EntityStore, reg *ecs.Registry, bus *event.Bus, _ time.Duration) {
	d.grid.Reset()
	ecs.Each2(reg, func(e ecs.Entity, b *component.Body, c *component.Collidable) {
		d.grid.Insert(e, b.Position, c.Radius)
	})
	n := d.grid.Pairs(func(a, b ecs.Entity) {
		event.Emit(bus, event.Collision{A: a, B: b})
	})
	d.total += uint64(n)
}

// Total returns the number of collision events emitted since creation.
func (d *Detector) Total() uint64 { return d.total }

// Grid exposes the underlying grid for inspection.
func (d *Detector) Grid() *Grid { return d.grid }
