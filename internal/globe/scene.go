package globe

import (
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Globe is the scene graph node holding the sphere and its markers.
// Only its spin about the Y axis is animated.
type Globe struct {
	Rotation float32 // Radians about +Y
}

// Transform returns the globe's local-to-world matrix.
func (g *Globe) Transform() math.Mat4 {
	return math.RotateY(g.Rotation)
}

// Scene is the state shared by the frame driver and its components.
// It replaces module-level singletons; every component receives it explicitly.
type Scene struct {
	Camera  *camera.Camera
	Globe   *Globe
	Markers *Registry
}

// NewScene assembles a scene around an existing camera and marker set.
func NewScene(cam *camera.Camera, markers *Registry) *Scene {
	return &Scene{
		Camera:  cam,
		Globe:   &Globe{},
		Markers: markers,
	}
}

// MarkerWorld returns a marker's current world position.
func (s *Scene) MarkerWorld(m Marker) math.Vec3 {
	return s.Globe.Transform().TransformVec3(m.Position)
}
