package globe

import (
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/picking"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Hit is the result of a successful pick.
type Hit struct {
	Marker Marker
	World  math.Vec3 // Marker position in world space at pick time
	T      float32   // Ray parameter of the hit, distance from the camera
}

// Pick casts a ray from the camera through pixel (x, y) and returns the
// marker whose pick sphere it enters first. Markers are tested at their
// world position under globeRotation. A miss is not an error.
func Pick(x, y float32, vp picking.Viewport, cam *camera.Camera, globeRotation float32, markers *Registry) (Hit, bool) {
	if markers == nil || markers.Len() == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return Hit{}, false
	}

	ray := picking.ScreenToRay(x, y, vp, cam.Position, cam.InverseViewProjection())

	spheres := markers.bounds(math.RotateY(globeRotation))
	idx, t, ok := ray.Nearest(spheres)
	if !ok {
		return Hit{}, false
	}

	return Hit{
		Marker: markers.markers[idx],
		World:  spheres[idx].Center,
		T:      t,
	}, true
}

// Pick runs Pick against the scene's camera viewport and globe rotation.
func (s *Scene) Pick(x, y float32) (Hit, bool) {
	vp := picking.Viewport{
		Width:  float32(s.Camera.Width),
		Height: float32(s.Camera.Height),
	}
	return Pick(x, y, vp, s.Camera, s.Globe.Rotation, s.Markers)
}
