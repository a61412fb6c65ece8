// Package config handles globe viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for out-of-domain settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Globe      GlobeConfig      `yaml:"globe"`
	Camera     CameraConfig     `yaml:"camera"`
	Transition TransitionConfig `yaml:"transition"`
	Rotation   RotationConfig   `yaml:"rotation"`
	Markers    []MarkerConfig   `yaml:"markers"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // Multisample count, 0 to disable
}

// GlobeConfig describes the globe surface and marker pick volumes.
type GlobeConfig struct {
	Radius       float32 `yaml:"radius"`
	MarkerHeight float32 `yaml:"marker_height"` // Lift above the surface
	MarkerRadius float32 `yaml:"marker_radius"` // Pick sphere radius
}

// CameraConfig holds the projection, the starting camera placement and the
// limits of drag and wheel input.
type CameraConfig struct {
	FovDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	Position   [3]float32 `yaml:"position"`

	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	DragSpeed   float32 `yaml:"drag_speed"` // Radians per pixel
	ZoomSpeed   float32 `yaml:"zoom_speed"` // Fraction of the distance per wheel notch
}

// TransitionConfig holds the camera flight tuning constants.
type TransitionConfig struct {
	LegDuration   time.Duration `yaml:"leg_duration"`
	TransitScale  float32       `yaml:"transit_scale"`  // Marker position multiplier for the high waypoint
	ApproachScale float32       `yaml:"approach_scale"` // Marker position multiplier for the final stop
	ResetScale    float32       `yaml:"reset_scale"`    // Camera position multiplier for pulling back
}

// RotationConfig holds the idle spin settings.
type RotationConfig struct {
	Speed        float32 `yaml:"speed"`         // Radians per step
	ScaleByTime  bool    `yaml:"scale_by_time"` // Scale Speed by dt * ReferenceFPS
	ReferenceFPS float32 `yaml:"reference_fps"`
}

// MarkerConfig is one named place on the globe.
type MarkerConfig struct {
	Name string  `yaml:"name"`
	Lat  float32 `yaml:"lat"`
	Lon  float32 `yaml:"lon"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Globe: GlobeConfig{
			Radius:       20,
			MarkerHeight: 0.3,
			MarkerRadius: 0.3,
		},
		Camera: CameraConfig{
			FovDegrees: 75,
			Near:       0.1,
			Far:        1000,
			Position:   [3]float32{22.237026, 30.993319, -13.000725},

			MinDistance: 1,
			MaxDistance: 45,
			DragSpeed:   0.005,
			ZoomSpeed:   0.1,
		},
		Transition: TransitionConfig{
			LegDuration:   time.Second,
			TransitScale:  2.0,
			ApproachScale: 1.2,
			ResetScale:    1.7,
		},
		Rotation: RotationConfig{
			Speed:        0.001,
			ScaleByTime:  false,
			ReferenceFPS: 60,
		},
		Markers: DefaultMarkers(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultMarkers returns the built-in set of places.
func DefaultMarkers() []MarkerConfig {
	return []MarkerConfig{
		{Name: "New York", Lat: 40.7128, Lon: -74.006},
		{Name: "London", Lat: 51.5074, Lon: -0.1278},
		{Name: "Sydney", Lat: -33.8688, Lon: 151.2093},
		{Name: "Kyiv", Lat: 50.45, Lon: 30.5233},
		{Name: "Cape Town", Lat: -33.9188, Lon: 18.4233},
		{Name: "Santiago", Lat: -33.4474, Lon: -70.6736},
	}
}

// Validate checks the settings the engine assumes are in range.
func (c *Config) Validate() error {
	if c.Graphics.MSAA < 0 {
		return fmt.Errorf("%w: graphics.msaa must not be negative", ErrInvalidConfig)
	}
	if c.Globe.Radius <= 0 {
		return fmt.Errorf("%w: globe radius %v must be positive", ErrInvalidConfig, c.Globe.Radius)
	}
	if c.Globe.MarkerHeight < 0 || c.Globe.MarkerRadius <= 0 {
		return fmt.Errorf("%w: marker height %v / radius %v", ErrInvalidConfig, c.Globe.MarkerHeight, c.Globe.MarkerRadius)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("%w: fov %v out of (0,180)", ErrInvalidConfig, c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}

	t := c.Transition
	if t.LegDuration <= 0 {
		return fmt.Errorf("%w: leg duration %v must be positive", ErrInvalidConfig, t.LegDuration)
	}
	if t.TransitScale <= 0 || t.ApproachScale <= 0 || t.ResetScale <= 0 {
		return fmt.Errorf("%w: transition scales must be positive", ErrInvalidConfig)
	}
	if c.Rotation.ScaleByTime && c.Rotation.ReferenceFPS <= 0 {
		return fmt.Errorf("%w: reference fps %v must be positive", ErrInvalidConfig, c.Rotation.ReferenceFPS)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance <= c.Camera.MinDistance {
		return fmt.Errorf("%w: orbit distance range [%v,%v]", ErrInvalidConfig, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.DragSpeed < 0 || c.Camera.ZoomSpeed < 0 || c.Camera.ZoomSpeed >= 1 {
		return fmt.Errorf("%w: drag speed %v / zoom speed %v", ErrInvalidConfig, c.Camera.DragSpeed, c.Camera.ZoomSpeed)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}

	for i, m := range c.Markers {
		if m.Lat < -90 || m.Lat > 90 {
			return fmt.Errorf("%w: marker %d (%s) latitude %v out of [-90,90]", ErrInvalidConfig, i, m.Name, m.Lat)
		}
		if m.Lon < -180 || m.Lon > 180 {
			return fmt.Errorf("%w: marker %d (%s) longitude %v out of [-180,180]", ErrInvalidConfig, i, m.Name, m.Lon)
		}
	}
	return nil
}
