package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

func TestViewportNDC(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}

	tests := []struct {
		name         string
		sx, sy       float32
		wantX, wantY float32
	}{
		{"center", 400, 300, 0, 0},
		{"top left", 0, 0, -1, 1},
		{"bottom right", 800, 600, 1, -1},
		{"top right", 800, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.NDC(tt.sx, tt.sy)
			assert.InDelta(t, tt.wantX, x, 1e-6)
			assert.InDelta(t, tt.wantY, y, 1e-6)
		})
	}
}

func TestScreenToRay_CenterLooksAtTarget(t *testing.T) {
	cam := camera.New(75, 0.1, 1000, 1280, 720)
	cam.Position = math.Vec3{X: 22.237, Y: 30.993, Z: -13.001}

	ray := ScreenToRay(640, 360, Viewport{Width: 1280, Height: 720}, cam.Position, cam.InverseViewProjection())

	want := cam.Target.Sub(cam.Position).Normalize()
	assert.True(t, ray.Direction.ApproxEqual(want, 1e-3), "got %v, want %v", ray.Direction, want)
	assert.Equal(t, cam.Position, ray.Origin)
	assert.InDelta(t, 1, ray.Direction.Length(), 1e-4)
}

func TestScreenToRay_YFlip(t *testing.T) {
	cam := camera.New(60, 0.1, 100, 100, 100)
	cam.Position = math.Vec3{Z: 10}

	up := ScreenToRay(50, 10, Viewport{Width: 100, Height: 100}, cam.Position, cam.InverseViewProjection())
	down := ScreenToRay(50, 90, Viewport{Width: 100, Height: 100}, cam.Position, cam.InverseViewProjection())

	assert.Greater(t, up.Direction.Y, float32(0), "upper half of the screen should aim up")
	assert.Less(t, down.Direction.Y, float32(0), "lower half of the screen should aim down")
}

func TestIntersectSphere(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}

	tests := []struct {
		name   string
		sphere Sphere
		wantT  float32
		hit    bool
	}{
		{"ahead", Sphere{Center: math.Vec3{}, Radius: 1}, 9, true},
		{"offset miss", Sphere{Center: math.Vec3{X: 3}, Radius: 1}, 0, false},
		{"behind", Sphere{Center: math.Vec3{Z: 20}, Radius: 1}, 0, false},
		{"origin inside", Sphere{Center: math.Vec3{Z: 10}, Radius: 2}, 2, true},
		{"grazing", Sphere{Center: math.Vec3{X: 1}, Radius: 1}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := ray.IntersectSphere(tt.sphere)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantT, got, 1e-4)
			}
		})
	}
}

func TestNearest_PicksSmallestParameter(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	spheres := []Sphere{
		{Center: math.Vec3{Z: -5}, Radius: 1}, // far
		{Center: math.Vec3{X: 5}, Radius: 1},  // off the ray
		{Center: math.Vec3{Z: 2}, Radius: 1},  // near
	}

	idx, tHit, hit := ray.Nearest(spheres)
	require.True(t, hit)
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 7, tHit, 1e-4)
	assert.True(t, ray.At(tHit).ApproxEqual(math.Vec3{Z: 3}, 1e-4))
}

func TestNearest_NoHit(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: 1}}
	idx, _, hit := ray.Nearest([]Sphere{{Center: math.Vec3{}, Radius: 1}})
	assert.False(t, hit)
	assert.Equal(t, -1, idx)

	_, _, hit = ray.Nearest(nil)
	assert.False(t, hit)
}
