package globe

import (
	gomath "math"
	"time"
)

// Rotation spins the globe while the camera is idle.
type Rotation struct {
	Speed float32 // Radians per step

	// ScaleByTime turns Speed into radians per 1/ReferenceFPS seconds so the
	// spin rate does not depend on the display refresh rate.
	ScaleByTime  bool
	ReferenceFPS float32
}

// Update advances g by one step when active. The angle is kept in [0, 2π).
func (r *Rotation) Update(g *Globe, dt time.Duration, active bool) {
	if !active || g == nil {
		return
	}

	step := r.Speed
	if r.ScaleByTime {
		step *= float32(dt.Seconds()) * r.ReferenceFPS
	}

	g.Rotation = float32(gomath.Mod(float64(g.Rotation+step), 2*gomath.Pi))
	if g.Rotation < 0 {
		g.Rotation += 2 * gomath.Pi
	}
}
