// Package tween runs eased interpolations as an ordered list of legs.
package tween

// Easing maps normalized time in [0,1] to interpolation progress.
type Easing func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 {
	return t
}

// QuadraticInOut accelerates through the first half and decelerates through
// the second.
func QuadraticInOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// clamp01 keeps normalized time inside the curve's domain.
func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
