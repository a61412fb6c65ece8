package globe

import (
	gomath "math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/picking"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

const (
	radius = 20
	height = 0.3
	eps    = 1e-3
)

var cities = []GeoPoint{
	{Lat: 40.7128, Lon: -74.006, Label: "New York"},
	{Lat: 51.5074, Lon: -0.1278, Label: "London"},
	{Lat: -33.8688, Lon: 151.2093, Label: "Sydney"},
	{Lat: 50.45, Lon: 30.5233, Label: "Kyiv"},
}

// newTestScene places the camera on +Z looking at the globe center through a
// square 800x800 viewport.
func newTestScene(points []GeoPoint) *Scene {
	cam := camera.New(75, 0.1, 1000, 800, 800)
	cam.Position = math.Vec3{Z: 50}
	return NewScene(cam, BuildMarkers(points, radius, height, 0.3))
}

func TestBuildMarkers(t *testing.T) {
	reg := BuildMarkers(cities, radius, height, 0.3)

	require.Equal(t, len(cities), reg.Len())
	assert.Equal(t, float32(0.3), reg.pickRadius)

	seen := map[MarkerID]bool{}
	for i, m := range reg.Markers() {
		assert.Equal(t, cities[i].Label, m.Point.Label, "order must match input")
		assert.Equal(t, cities[i], m.Point)
		assert.NotZero(t, m.ID)
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true

		assert.InDelta(t, radius+height, m.Position.Length(), eps)

		byID, ok := reg.ByID(m.ID)
		require.True(t, ok)
		assert.Equal(t, m, byID)
	}

	_, ok := reg.ByID(0)
	assert.False(t, ok)
	_, ok = reg.ByID(MarkerID(len(cities) + 1))
	assert.False(t, ok)
}

func TestRegistryMarkersIsACopy(t *testing.T) {
	reg := BuildMarkers(cities, radius, height, 0.3)

	ms := reg.Markers()
	ms[0].Point.Label = "changed"
	ms[0].Position = math.Vec3{}

	again := reg.Markers()
	assert.Equal(t, "New York", again[0].Point.Label)
	assert.NotEqual(t, math.Vec3{}, again[0].Position)
}

func TestBuildMarkersEmpty(t *testing.T) {
	reg := BuildMarkers(nil, radius, height, 0.3)
	assert.Zero(t, reg.Len())
	assert.Empty(t, reg.Markers())
}

func TestPick_CenterHitsNearestOfTwoOnOneRay(t *testing.T) {
	// Both sit on the Z axis; the ray through the screen center passes
	// through the far one only after the near one.
	points := []GeoPoint{
		{Lat: 0, Lon: 90, Label: "far"},   // (0, 0, -20.3)
		{Lat: 0, Lon: -90, Label: "near"}, // (0, 0, +20.3)
	}
	scene := newTestScene(points)

	hit, ok := scene.Pick(400, 400)
	require.True(t, ok)
	assert.Equal(t, "near", hit.Marker.Point.Label)
	assert.InDelta(t, 50-(radius+height)-0.3, hit.T, eps)
	assert.True(t, hit.World.ApproxEqual(math.Vec3{Z: radius + height}, eps), "world %v", hit.World)
}

func TestPick_Miss(t *testing.T) {
	scene := newTestScene([]GeoPoint{{Lat: 0, Lon: -90, Label: "near"}})

	for _, p := range [][2]float32{{0, 0}, {800, 800}, {10, 400}, {400, 790}} {
		_, ok := scene.Pick(p[0], p[1])
		assert.False(t, ok, "pixel %v", p)
	}
}

func TestPick_Deterministic(t *testing.T) {
	scene := newTestScene(cities)
	scene.Camera.Position = geoCameraAbove(cities[1], 45)

	first, ok1 := scene.Pick(400, 400)
	for i := 0; i < 10; i++ {
		again, ok := scene.Pick(400, 400)
		assert.Equal(t, ok1, ok)
		assert.Equal(t, first, again)
	}
	require.True(t, ok1)
	assert.Equal(t, "London", first.Marker.Point.Label)
}

func TestPick_FollowsGlobeRotation(t *testing.T) {
	points := []GeoPoint{
		{Lat: 0, Lon: 0, Label: "prime"},     // local (+20.3, 0, 0)
		{Lat: 0, Lon: 180, Label: "antimer"}, // local (-20.3, 0, 0)
	}
	scene := newTestScene(points)

	_, ok := scene.Pick(400, 400)
	assert.False(t, ok, "nothing on the view axis before rotating")

	// A quarter turn carries the antimeridian marker onto +Z.
	scene.Globe.Rotation = gomath.Pi / 2
	hit, ok := scene.Pick(400, 400)
	require.True(t, ok)
	assert.Equal(t, "antimer", hit.Marker.Point.Label)
	assert.True(t, hit.World.ApproxEqual(math.Vec3{Z: radius + height}, eps), "world %v", hit.World)
	assert.Equal(t, scene.MarkerWorld(hit.Marker), hit.World)
}

func TestPick_DegenerateInputs(t *testing.T) {
	scene := newTestScene(cities)

	_, ok := Pick(400, 400, picking.Viewport{}, scene.Camera, 0, scene.Markers)
	assert.False(t, ok)

	_, ok = Pick(400, 400, picking.Viewport{Width: 800, Height: 800}, scene.Camera, 0, nil)
	assert.False(t, ok)
}

// geoCameraAbove returns a camera position straight above p at distance d
// from the globe center.
func geoCameraAbove(p GeoPoint, d float32) math.Vec3 {
	return BuildMarkers([]GeoPoint{p}, 1, 0, 0).Markers()[0].Position.Scale(d)
}

func TestRotation(t *testing.T) {
	g := &Globe{}
	r := &Rotation{Speed: 0.001}

	r.Update(g, 16*time.Millisecond, true)
	assert.InDelta(t, 0.001, g.Rotation, 1e-7)

	r.Update(g, 16*time.Millisecond, false)
	assert.InDelta(t, 0.001, g.Rotation, 1e-7, "inactive steps must not rotate")

	// Constant per-step increment regardless of dt.
	r.Update(g, time.Second, true)
	assert.InDelta(t, 0.002, g.Rotation, 1e-7)
}

func TestRotation_ScaleByTime(t *testing.T) {
	g := &Globe{}
	r := &Rotation{Speed: 0.001, ScaleByTime: true, ReferenceFPS: 60}

	r.Update(g, time.Second, true)
	assert.InDelta(t, 0.06, g.Rotation, 1e-6)
}

func TestRotation_Wraps(t *testing.T) {
	g := &Globe{Rotation: 2*gomath.Pi - 0.0005}
	r := &Rotation{Speed: 0.001}

	r.Update(g, 0, true)
	assert.GreaterOrEqual(t, g.Rotation, float32(0))
	assert.Less(t, g.Rotation, float32(0.01))
}
