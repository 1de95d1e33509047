package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/blastsim/internal/component"
	"github.com/l1jgo/blastsim/internal/core/ecs"
)

const (
	circleRune   = '█'
	particleRune = '·'
)

// Renderer draws the world into a tcell screen, scaling world units onto
// terminal cells. It only reads the registry.
type Renderer struct {
	screen tcell.Screen
	width  float64
	height float64
	bg     tcell.Style
}

func NewRenderer(screen tcell.Screen, worldWidth, worldHeight float64) *Renderer {
	return &Renderer{
		screen: screen,
		width:  worldWidth,
		height: worldHeight,
		bg:     tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// scale returns world units per terminal cell on each axis.
func (r *Renderer) scale() (float64, float64) {
	cols, rows := r.screen.Size()
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return r.width / float64(cols), r.height / float64(rows)
}

// Draw clears the screen, draws circles then particles, and shows the frame.
func (r *Renderer) Draw(reg *ecs.Registry) {
	r.screen.SetStyle(r.bg)
	r.screen.Clear()
	ux, uy := r.scale()

	for _, row := range ecs.Query2[component.Body, component.Shape](reg) {
		r.fillCircle(row.A.Position, row.B.Radius, ux, uy, style(row.B.Color, 1))
	}
	for _, row := range ecs.Query2[component.Body, component.Particle](reg) {
		x := int(math.Floor(row.A.Position.X / ux))
		y := int(math.Floor(row.A.Position.Y / uy))
		r.set(x, y, particleRune, style(row.B.Color, row.B.Alpha))
	}
	r.screen.Show()
}

// fillCircle sets every cell whose centre lies inside the circle. A circle
// smaller than a cell still marks the cell under its centre.
func (r *Renderer) fillCircle(c component.Vector2, radius, ux, uy float64, st tcell.Style) {
	x0 := int(math.Floor((c.X - radius) / ux))
	x1 := int(math.Floor((c.X + radius) / ux))
	y0 := int(math.Floor((c.Y - radius) / uy))
	y1 := int(math.Floor((c.Y + radius) / uy))
	r.set(int(math.Floor(c.X/ux)), int(math.Floor(c.Y/uy)), circleRune, st)

	rr := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			centre := component.Vector2{X: (float64(x) + 0.5) * ux, Y: (float64(y) + 0.5) * uy}
			if centre.DistSq(c) < rr {
				r.set(x, y, circleRune, st)
			}
		}
	}
}

func (r *Renderer) set(x, y int, ch rune, st tcell.Style) {
	cols, rows := r.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, st)
}

// style scales c by alpha, clamped to [0,1].
func style(c component.RGB, alpha float64) tcell.Style {
	alpha = math.Max(0, math.Min(1, alpha))
	fg := tcell.NewRGBColor(
		int32(float64(c.R)*alpha),
		int32(float64(c.G)*alpha),
		int32(float64(c.B)*alpha),
	)
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
}

// Sync redraws the whole terminal, used after a resize.
func (r *Renderer) Sync() {
	r.screen.Sync()
}

// IsQuit reports whether ev asks the program to exit: Esc, Ctrl-C, or q.
func IsQuit(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return isQuitKey(k.Key(), k.Rune())
}

func isQuitKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q'
	}
	return false
}
