package app

import (
	"github.com/Faultbox/midgard-globe/internal/config"
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/input"
	"github.com/Faultbox/midgard-globe/internal/engine/tween"
	"github.com/Faultbox/midgard-globe/internal/globe"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// NewScene builds the camera and marker registry described by cfg.
func NewScene(cfg *config.Config) *globe.Scene {
	cam := camera.New(cfg.Camera.FovDegrees, cfg.Camera.Near, cfg.Camera.Far,
		cfg.Graphics.Width, cfg.Graphics.Height)
	p := cfg.Camera.Position
	cam.Position = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	cam.Controls.MinDistance = cfg.Camera.MinDistance
	cam.Controls.MaxDistance = cfg.Camera.MaxDistance
	cam.Controls.DragSpeed = cfg.Camera.DragSpeed
	cam.Controls.ZoomSpeed = cfg.Camera.ZoomSpeed

	points := make([]globe.GeoPoint, len(cfg.Markers))
	for i, m := range cfg.Markers {
		points[i] = globe.GeoPoint{Lat: m.Lat, Lon: m.Lon, Label: m.Name}
	}
	markers := globe.BuildMarkers(points, cfg.Globe.Radius, cfg.Globe.MarkerHeight, cfg.Globe.MarkerRadius)

	return globe.NewScene(cam, markers)
}

// NewDriver wires the engine and idle rotation from cfg around scene.
func NewDriver(cfg *config.Config, scene *globe.Scene, r globe.Renderer) *globe.Driver {
	engine := globe.NewEngine(scene.Camera, globe.EngineConfig{
		LegDuration:   cfg.Transition.LegDuration,
		TransitScale:  cfg.Transition.TransitScale,
		ApproachScale: cfg.Transition.ApproachScale,
		ResetScale:    cfg.Transition.ResetScale,
		Easing:        tween.QuadraticInOut,
	})
	rotation := &globe.Rotation{
		Speed:        cfg.Rotation.Speed,
		ScaleByTime:  cfg.Rotation.ScaleByTime,
		ReferenceFPS: cfg.Rotation.ReferenceFPS,
	}
	return globe.NewDriver(scene, engine, rotation, r)
}

// PointerButton maps mouse buttons to globe actions: left picks, right resets.
func PointerButton(b input.Button) globe.Button {
	switch b {
	case input.ButtonLeft:
		return globe.ButtonPrimary
	case input.ButtonRight:
		return globe.ButtonSecondary
	default:
		return globe.ButtonNone
	}
}
