// Package geo converts geographic coordinates to positions on the globe.
package geo

import (
	gomath "math"

	"github.com/Faultbox/midgard-globe/pkg/math"
)

// SeamOffset is the longitude, in degrees, that lands on the +X/-X seam of
// the globe texture. Longitude 180 projects onto -X.
const SeamOffset = 180.0

// Project maps latitude/longitude in degrees to a point radius+height away
// from the globe center. Y is up; the poles project onto the Y axis.
func Project(lat, lon, radius, height float32) math.Vec3 {
	phi := float64(lat) * gomath.Pi / 180
	theta := (float64(lon) - SeamOffset) * gomath.Pi / 180
	r := float64(radius + height)

	return math.Vec3{
		X: float32(-r * gomath.Cos(phi) * gomath.Cos(theta)),
		Y: float32(r * gomath.Sin(phi)),
		Z: float32(r * gomath.Cos(phi) * gomath.Sin(theta)),
	}
}
