package component

// Particle is a short-lived explosion fragment. Alpha falls by DecayRate
// per second until it reaches zero.
type Particle struct {
	Color     RGB
	Radius    float64
	Alpha     float64
	DecayRate float64
}
