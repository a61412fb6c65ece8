// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Viewport is the pixel rectangle pointer coordinates are relative to.
type Viewport struct {
	Width, Height float32
}

// NDC converts pixel coordinates to normalized device coordinates in [-1,1].
// Screen Y grows downward, NDC Y grows upward.
func (v Viewport) NDC(screenX, screenY float32) (x, y float32) {
	x = 2.0*screenX/v.Width - 1.0
	y = 1.0 - 2.0*screenY/v.Height
	return x, y
}

// ScreenToRay converts screen coordinates to a world-space ray starting at
// origin (the camera's world position). invViewProj is the inverse of the
// view-projection matrix.
func ScreenToRay(screenX, screenY float32, vp Viewport, origin math.Vec3, invViewProj math.Mat4) Ray {
	ndcX, ndcY := vp.NDC(screenX, screenY)

	// Any depth inside the frustum works; the ray runs from the eye through it.
	point := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 0.5})

	return Ray{
		Origin:    origin,
		Direction: point.Sub(origin).Normalize(),
	}
}

// Sphere is a bounding sphere used as a pick volume.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// IntersectSphere tests ray intersection with a sphere.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(s Sphere) (t float32, hit bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(gomath.Sqrt(float64(disc)))
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false // Sphere behind ray origin
	}
	return t, true
}

// Nearest returns the index of the sphere hit closest to the ray origin, the
// ray parameter of that hit, and whether anything was hit at all.
// Ties keep the earlier index.
func (r Ray) Nearest(spheres []Sphere) (index int, t float32, hit bool) {
	index = -1
	for i, s := range spheres {
		st, ok := r.IntersectSphere(s)
		if !ok {
			continue
		}
		if !hit || st < t {
			index, t, hit = i, st, true
		}
	}
	return index, t, hit
}
