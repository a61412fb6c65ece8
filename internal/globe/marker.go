// Package globe implements the interactive globe: marker registry, picking,
// camera transitions, idle rotation and the per-frame driver.
package globe

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/engine/geo"
	"github.com/Faultbox/midgard-globe/internal/engine/picking"
	"github.com/Faultbox/midgard-globe/internal/logger"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// GeoPoint is a named place in degrees.
type GeoPoint struct {
	Lat   float32 // [-90, 90]
	Lon   float32 // [-180, 180]
	Label string
}

// MarkerID identifies a marker within its registry. Zero is never assigned.
type MarkerID int

// Marker is a GeoPoint projected onto the globe, in globe-local space.
type Marker struct {
	ID       MarkerID
	Point    GeoPoint
	Position math.Vec3
}

// Registry holds the fixed marker set. It is built once and never changes.
type Registry struct {
	markers    []Marker
	pickRadius float32
}

// BuildMarkers projects every point to surfaceRadius+surfaceHeight and gives
// it a pick sphere of pickRadius. Output order matches input order.
func BuildMarkers(points []GeoPoint, surfaceRadius, surfaceHeight, pickRadius float32) *Registry {
	r := &Registry{
		markers:    make([]Marker, len(points)),
		pickRadius: pickRadius,
	}
	for i, p := range points {
		r.markers[i] = Marker{
			ID:       MarkerID(i + 1),
			Point:    p,
			Position: geo.Project(p.Lat, p.Lon, surfaceRadius, surfaceHeight),
		}
	}

	logger.Named("globe").Debug("marker registry built",
		zap.Int("markers", len(points)),
		zap.Float32("surface_radius", surfaceRadius),
		zap.Float32("surface_height", surfaceHeight),
	)
	return r
}

// Len returns the number of markers.
func (r *Registry) Len() int {
	return len(r.markers)
}

// Markers returns a copy of the markers in registration order.
func (r *Registry) Markers() []Marker {
	out := make([]Marker, len(r.markers))
	copy(out, r.markers)
	return out
}

// ByID looks up a marker.
func (r *Registry) ByID(id MarkerID) (Marker, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(r.markers) {
		return Marker{}, false
	}
	return r.markers[i], true
}

// bounds returns each marker's pick sphere after applying the globe transform.
func (r *Registry) bounds(globe math.Mat4) []picking.Sphere {
	spheres := make([]picking.Sphere, len(r.markers))
	for i, m := range r.markers {
		spheres[i] = picking.Sphere{
			Center: globe.TransformVec3(m.Position),
			Radius: r.pickRadius,
		}
	}
	return spheres
}
