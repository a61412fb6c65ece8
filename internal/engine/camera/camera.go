// Package camera provides the perspective camera the globe is viewed through.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Controls bound the user's orbit input.
type Controls struct {
	MinDistance float32 // Closest the camera may get to its target
	MaxDistance float32 // Farthest the camera may get from its target
	MaxPitch    float32 // Elevation limit above and below the target, radians

	DragSpeed float32 // Radians per pixel of drag
	ZoomSpeed float32 // Fraction of the distance per wheel notch
}

// DefaultControls keeps the camera within 45 units of its target.
func DefaultControls() Controls {
	return Controls{
		MinDistance: 1,
		MaxDistance: 45,
		MaxPitch:    1.5,
		DragSpeed:   0.005,
		ZoomSpeed:   0.1,
	}
}

// Camera is a perspective camera looking at an orbit target.
// Position and Target are written directly by whoever drives the camera;
// the matrices are derived on demand.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3 // Orbit target, the point the camera looks at
	Up       math.Vec3

	Controls Controls

	FovY float32 // Vertical field of view, radians
	Near float32
	Far  float32

	// Viewport in pixels
	Width  int
	Height int
}

// New creates a camera with the given vertical field of view in degrees,
// looking at the origin.
func New(fovDegrees, near, far float32, width, height int) *Camera {
	return &Camera{
		Up:       math.Vec3{X: 0, Y: 1, Z: 0},
		Controls: DefaultControls(),
		FovY:     fovDegrees * gomath.Pi / 180,
		Near:     near,
		Far:      far,
		Width:    width,
		Height:   height,
	}
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (c *Camera) Aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// SetViewport updates the viewport size. Non-positive sizes are ignored,
// which happens while a window is minimised.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width = width
	c.Height = height
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect(), c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the transform from clip space back to world space.
func (c *Camera) InverseViewProjection() math.Mat4 {
	return c.ViewProjection().Inverse()
}

// Distance returns the distance from the camera to its orbit target.
func (c *Camera) Distance() float32 {
	return c.Position.Distance(c.Target)
}

// HandleDrag orbits the camera around Target by a pointer delta in pixels.
// Moving right swings the camera left around the target; moving down raises it.
func (c *Camera) HandleDrag(dx, dy float32) {
	dist, yaw, pitch, ok := c.orbit()
	if !ok {
		return
	}
	yaw -= float64(dx * c.Controls.DragSpeed)
	pitch += float64(dy * c.Controls.DragSpeed)
	c.place(dist, yaw, pitch)
}

// HandleZoom moves the camera toward (delta > 0) or away from Target along
// the line of sight. The distance is held inside the Controls range.
func (c *Camera) HandleZoom(delta float32) {
	dist, yaw, pitch, ok := c.orbit()
	if !ok {
		return
	}
	c.place(dist*(1-float64(delta*c.Controls.ZoomSpeed)), yaw, pitch)
}

// orbit returns the camera's spherical offset from Target. ok is false when
// the camera sits on its target and has no direction.
func (c *Camera) orbit() (dist, yaw, pitch float64, ok bool) {
	dist = float64(c.Distance())
	if dist == 0 {
		return 0, 0, 0, false
	}
	off := c.Position.Sub(c.Target)
	yaw = gomath.Atan2(float64(off.X), float64(off.Z))
	pitch = gomath.Asin(gomath.Max(-1, gomath.Min(1, float64(off.Y)/dist)))
	return dist, yaw, pitch, true
}

func (c *Camera) place(dist, yaw, pitch float64) {
	ctl := c.Controls
	dist = gomath.Max(float64(ctl.MinDistance), gomath.Min(float64(ctl.MaxDistance), dist))
	limit := float64(ctl.MaxPitch)
	pitch = gomath.Max(-limit, gomath.Min(limit, pitch))

	c.Position = c.Target.Add(math.Vec3{
		X: float32(dist * gomath.Cos(pitch) * gomath.Sin(yaw)),
		Y: float32(dist * gomath.Sin(pitch)),
		Z: float32(dist * gomath.Cos(pitch) * gomath.Cos(yaw)),
	})
}
