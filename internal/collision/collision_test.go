package collision

import (
	"testing"
	"time"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
	"github.com/l1jgo/blastsim/internal/core/event"
	"go.uber.org/zap"
)

func TestGridSizedByCellCount(t *testing.T) {
	g := NewGrid(100, 50, 30)
	if g.Cols() != 4 || g.Rows() != 2 {
		t.Fatalf("expected 4x2 cells, got %dx%d", g.Cols(), g.Rows())
	}
	if g.CellCount() != 8 {
		t.Errorf("expected 8 cells, got %d", g.CellCount())
	}

	exact := NewGrid(90, 60, 30)
	if exact.Cols() != 3 || exact.Rows() != 2 {
		t.Errorf("expected 3x2 cells for exact multiple, got %dx%d", exact.Cols(), exact.Rows())
	}
}

func TestGridStrideUsesColumnCount(t *testing.T) {
	g := NewGrid(100, 100, 10)
	// centre of cell (col 3, row 5)
	g.Insert(ecs.NewEntity(1, 1), component.Vector2{X: 35, Y: 55}, 1)
	if g.CellLen(3, 5) != 1 {
		t.Errorf("expected body in cell (3,5)")
	}
	if got := len(g.cells[3+5*10]); got != 1 {
		t.Errorf("expected flat index col+row*cols to hold the body, got %d", got)
	}
}

func TestGridInsertDistinctCorners(t *testing.T) {
	g := NewGrid(100, 100, 10)

	if n := g.Insert(ecs.NewEntity(1, 1), component.Vector2{X: 15, Y: 15}, 2); n != 1 {
		t.Errorf("small body: expected 1 cell, got %d", n)
	}
	if n := g.Insert(ecs.NewEntity(2, 1), component.Vector2{X: 20, Y: 15}, 2); n != 2 {
		t.Errorf("body on a vertical edge: expected 2 cells, got %d", n)
	}
	if n := g.Insert(ecs.NewEntity(3, 1), component.Vector2{X: 20, Y: 20}, 2); n != 4 {
		t.Errorf("body on a corner: expected 4 cells, got %d", n)
	}
	if g.CellLen(1, 1) != 3 {
		t.Errorf("expected 3 bodies in cell (1,1), got %d", g.CellLen(1, 1))
	}
}

func TestGridClampsOutsideWorld(t *testing.T) {
	g := NewGrid(100, 100, 50)
	if n := g.Insert(ecs.NewEntity(1, 1), component.Vector2{X: -20, Y: 500}, 5); n != 1 {
		t.Errorf("expected clamped body in 1 cell, got %d", n)
	}
	if g.CellLen(0, 1) != 1 {
		t.Error("expected body clamped into bottom-left cell")
	}
}

func TestGridReset(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(ecs.NewEntity(1, 1), component.Vector2{X: 5, Y: 5}, 1)
	g.Reset()
	if g.CellLen(0, 0) != 0 {
		t.Error("reset left candidates behind")
	}
	if cap(g.cells[0]) == 0 {
		t.Error("reset should keep bucket capacity")
	}
}

func TestOverlapStrict(t *testing.T) {
	origin := component.Vector2{}
	if !overlaps(origin, 5, component.Vector2{X: 8}, 5) {
		t.Error("distance 8 < 10 should overlap")
	}
	if overlaps(origin, 5, component.Vector2{X: 11}, 5) {
		t.Error("distance 11 >= 10 should not overlap")
	}
	if overlaps(origin, 5, component.Vector2{X: 10}, 5) {
		t.Error("touching circles must not overlap")
	}
}

type collisionSink struct {
	events []event.Collision
}

func (s *collisionSink) Receive(ev event.Collision) { s.events = append(s.events, ev) }

func setupWorld(_ *testing.T) (*ecs.World, *event.Bus, *collisionSink) {
	w := ecs.NewWorld()
	ecs.Declare[component.Body](w.Registry())
	ecs.Declare[component.Collidable](w.Registry())
	bus := event.NewBus()
	sink := &collisionSink{}
	event.Subscribe[event.Collision](bus, sink)
	return w, bus, sink
}

func spawn(t *testing.T, w *ecs.World, x, y, r float64) ecs.Entity {
	t.Helper()
	e := w.Store().Create()
	if _, err := ecs.Register(w.Registry(), e, component.Body{Position: component.Vector2{X: x, Y: y}}); err != nil {
		t.Fatalf("register body: %v", err)
	}
	if _, err := ecs.Register(w.Registry(), e, component.Collidable{Radius: r}); err != nil {
		t.Fatalf("register collidable: %v", err)
	}
	return e
}

func TestDetectorOverlappingCircles(t *testing.T) {
	w, bus, sink := setupWorld(t)
	a := spawn(t, w, 20, 20, 5)
	b := spawn(t, w, 28, 20, 5)

	d := NewDetector(100, 100, 50, zap.NewNop())
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)

	if len(sink.events) != 2 {
		t.Fatalf("expected both ordered pairs, got %d events", len(sink.events))
	}
	pairs := map[event.Collision]bool{}
	for _, ev := range sink.events {
		pairs[ev] = true
	}
	if !pairs[event.Collision{A: a, B: b}] || !pairs[event.Collision{A: b, B: a}] {
		t.Errorf("unexpected pairs %v", sink.events)
	}
	if d.Total() != 2 {
		t.Errorf("expected total 2, got %d", d.Total())
	}
}

func TestDetectorSeparatedCircles(t *testing.T) {
	w, bus, sink := setupWorld(t)
	spawn(t, w, 20, 20, 5)
	spawn(t, w, 31, 20, 5)

	d := NewDetector(100, 100, 50, zap.NewNop())
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)

	if len(sink.events) != 0 {
		t.Errorf("expected no collision, got %v", sink.events)
	}
}

func TestDetectorDifferentCellsNoEvent(t *testing.T) {
	w, bus, sink := setupWorld(t)
	spawn(t, w, 5, 5, 1)
	spawn(t, w, 95, 95, 1)

	d := NewDetector(100, 100, 10, zap.NewNop())
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)
	if len(sink.events) != 0 {
		t.Errorf("far apart bodies collided: %v", sink.events)
	}
}

func TestDetectorDuplicatesAcrossSharedCells(t *testing.T) {
	w, bus, sink := setupWorld(t)
	// both straddle the corner at (50,50) and share all four cells
	spawn(t, w, 49, 49, 4)
	spawn(t, w, 51, 51, 4)

	d := NewDetector(100, 100, 50, zap.NewNop())
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)
	if len(sink.events) != 8 {
		t.Errorf("expected 2 ordered pairs x 4 cells, got %d", len(sink.events))
	}
}

func TestDetectorResetsBetweenTicks(t *testing.T) {
	w, bus, sink := setupWorld(t)
	a := spawn(t, w, 20, 20, 5)
	spawn(t, w, 28, 20, 5)

	d := NewDetector(100, 100, 50, zap.NewNop())
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)
	_ = w.Store().Destroy(a)
	sink.events = nil
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)
	if len(sink.events) != 0 {
		t.Errorf("stale candidates survived reset: %v", sink.events)
	}
}

func TestDetectorIgnoresBodiesWithoutCollidable(t *testing.T) {
	w, bus, sink := setupWorld(t)
	spawn(t, w, 20, 20, 5)
	e := w.Store().Create()
	_, _ = ecs.Register(w.Registry(), e, component.Body{Position: component.Vector2{X: 21, Y: 20}})

	d := NewDetector(100, 100, 50, zap.NewNop())
	d.Run(w.Store(), w.Registry(), bus, time.Millisecond)
	if len(sink.events) != 0 {
		t.Errorf("body without Collidable took part in a collision: %v", sink.events)
	}
}
