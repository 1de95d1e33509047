package component

// Vector2 is a point or direction in world space.
type Vector2 struct {
	X float64
	Y float64
}

func (v Vector2) Add(o Vector2) Vector2    { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2    { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(k float64) Vector2  { return Vector2{v.X * k, v.Y * k} }
func (v Vector2) LenSq() float64           { return v.X*v.X + v.Y*v.Y }
func (v Vector2) DistSq(o Vector2) float64 { return v.Sub(o).LenSq() }

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Body holds kinematic state.
// Pure data; systems do all mutation.
type Body struct {
	Position Vector2
	Velocity Vector2
}

// Shape is render data; Radius is also the default collision radius.
type Shape struct {
	Radius float64
	Color  RGB
}

// Collidable opts an entity into the collision grid.
type Collidable struct {
	Radius float64
}
