package collision

import (
	"math"

	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
)

// candidate is one body bucketed into a cell.
type candidate struct {
	entity ecs.Entity
	pos    component.Vector2
	radius float64
}

// Grid partitions the world into square cells of side cellSize.
// It has ceil(width/cellSize) columns and ceil(height/cellSize) rows and is
// addressed as col + row*cols. Accessed only from the game loop goroutine.
type Grid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]candidate
}

// NewGrid sizes the grid by cell count. Non-positive arguments produce a
// single-cell grid.
func NewGrid(width, height, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = math.Max(width, height)
		if cellSize <= 0 {
			cellSize = 1
		}
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cells := make([][]candidate, cols*rows)
	for i := range cells {
		cells[i] = make([]candidate, 0, 8)
	}
	return &Grid{cellSize: cellSize, cols: cols, rows: rows, cells: cells}
}

func (g *Grid) Cols() int      { return g.cols }
func (g *Grid) Rows() int      { return g.rows }
func (g *Grid) CellCount() int { return len(g.cells) }

// Reset empties every bucket, keeping allocated capacity.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// toCell maps a world coordinate to a cell coordinate, clamped to [0, n-1].
func (g *Grid) toCell(v float64, n int) int {
	c := int(math.Floor(v / g.cellSize))
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

func (g *Grid) index(col, row int) int {
	return col + row*g.cols
}

// Insert buckets a circle into every distinct cell touched by the four
// corners of its bounding box. Returns the number of cells it landed in.
func (g *Grid) Insert(e ecs.Entity, pos component.Vector2, radius float64) int {
	c := candidate{entity: e, pos: pos, radius: radius}

	left := g.toCell(pos.X-radius, g.cols)
	right := g.toCell(pos.X+radius, g.cols)
	top := g.toCell(pos.Y-radius, g.rows)
	bottom := g.toCell(pos.Y+radius, g.rows)

	corners := [4]int{
		g.index(left, top),
		g.index(right, top),
		g.index(left, bottom),
		g.index(right, bottom),
	}
	n := 0
	for i, idx := range corners {
		dup := false
		for _, prev := range corners[:i] {
			if prev == idx {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		g.cells[idx] = append(g.cells[idx], c)
		n++
	}
	return n
}

// CellLen returns the number of candidates in the cell at col, row.
func (g *Grid) CellLen(col, row int) int {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0
	}
	return len(g.cells[g.index(col, row)])
}

// Pairs calls fn for every ordered pair (a, b), a != b, sharing a cell whose
// circles overlap: squared center distance strictly less than the squared sum
// of radii. A pair sharing k cells is reported k times in each order.
func (g *Grid) Pairs(fn func(a, b ecs.Entity)) int {
	found := 0
	for _, bucket := range g.cells {
		if len(bucket) < 2 {
			continue
		}
		for i := range bucket {
			a := &bucket[i]
			for j := range bucket {
				if i == j {
					continue
				}
				b := &bucket[j]
				if a.entity == b.entity {
					continue
				}
				if overlaps(a.pos, a.radius, b.pos, b.radius) {
					fn(a.entity, b.entity)
					found++
				}
			}
		}
	}
	return found
}

func overlaps(pa component.Vector2, ra float64, pb component.Vector2, rb float64) bool {
	sum := ra + rb
	return pa.DistSq(pb) < sum*sum
}
