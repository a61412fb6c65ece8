package globe

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-globe/internal/engine/tween"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// frameLog is a renderer that records every frame it is handed.
type frameLog struct {
	frames []Frame
	err    error
}

func (l *frameLog) Render(f *Frame) error {
	l.frames = append(l.frames, *f)
	return l.err
}

func newTestDriver(points []GeoPoint) (*Driver, *frameLog) {
	scene := newTestScene(points)
	engine := NewEngine(scene.Camera, DefaultEngineConfig())
	rot := &Rotation{Speed: 0.001}
	log := &frameLog{}
	return NewDriver(scene, engine, rot, log), log
}

var nearMarker = []GeoPoint{{Lat: 0, Lon: -90, Label: "near"}}

func TestDriver_IdleTicksRotateOnly(t *testing.T) {
	d, log := newTestDriver(cities)
	startCam := d.Scene().Camera.Position

	for i := 0; i < 10; i++ {
		require.NoError(t, d.Tick(16*time.Millisecond))
	}

	assert.Equal(t, uint64(10), d.Frames())
	assert.Equal(t, 160*time.Millisecond, d.Clock())
	assert.InDelta(t, 0.01, d.Scene().Globe.Rotation, 1e-6)
	assert.Equal(t, startCam, d.Scene().Camera.Position, "idle rotation never moves the camera")

	require.Len(t, log.frames, 10)
	assert.Equal(t, uint64(10), log.frames[9].Index)
	assert.Equal(t, d.Scene().Globe.Rotation, log.frames[9].GlobeRotation)
}

func TestDriver_PickRunsFullTransition(t *testing.T) {
	d, _ := newTestDriver(nearMarker)
	marker := d.Scene().Markers.Markers()[0]

	d.PointerDown(400, 400, ButtonPrimary)
	require.Equal(t, Transitioning, d.Engine().State())

	for i := 0; i < stepsFor(2*time.Second); i++ {
		require.NoError(t, d.Tick(step))
	}

	assert.Equal(t, Idle, d.Engine().State())
	assert.False(t, d.Engine().RotationSuppressed())
	// The completing tick already turns the globe; the target turns with it.
	assert.True(t, d.Scene().Camera.Target.ApproxEqual(d.Scene().MarkerWorld(marker), eps))
}

func TestDriver_TraceMatchesLegConcatenation(t *testing.T) {
	d, log := newTestDriver(nearMarker)
	start := d.Scene().Camera.Position
	world := d.Scene().MarkerWorld(d.Scene().Markers.Markers()[0])

	d.PointerDown(400, 400, ButtonPrimary)

	n := stepsFor(2 * time.Second)
	for i := 0; i < n; i++ {
		require.NoError(t, d.Tick(step))
	}
	require.Len(t, log.frames, n)

	// The completing tick turns the camera with the globe, so compare in
	// globe-local space. Every earlier frame has zero rotation.
	local := func(f Frame) math.Vec3 {
		return math.RotateY(-f.GlobeRotation).TransformVec3(f.CameraPosition)
	}

	leg1 := tween.Leg{From: start, To: world.Scale(2), Easing: tween.QuadraticInOut}
	leg2 := tween.Leg{From: world.Scale(2), To: world.Scale(1.2), Easing: tween.QuadraticInOut}
	half := n / 2

	for i, f := range log.frames {
		var want math.Vec3
		if i < half {
			want = leg1.Value(float32(i+1) / float32(half))
		} else {
			want = leg2.Value(float32(i+1-half) / float32(half))
		}
		assert.True(t, local(f).ApproxEqual(want, eps), "frame %d: got %v, want %v", i, local(f), want)
	}

	// Monotonic progress within each leg: distance to the leg end never grows.
	for i := 1; i < len(log.frames); i++ {
		end := leg1.To
		if i >= half {
			end = leg2.To
		}
		if i == half {
			continue
		}
		prev := local(log.frames[i-1]).Distance(end)
		cur := local(log.frames[i]).Distance(end)
		assert.LessOrEqual(t, cur, prev+eps, "frame %d moved away from the leg end", i)
	}
}

func TestDriver_RotationSuppressedDuringTransition(t *testing.T) {
	d, log := newTestDriver(nearMarker)

	d.PointerDown(400, 400, ButtonPrimary)
	n := stepsFor(2 * time.Second)
	for i := 0; i < n+5; i++ {
		require.NoError(t, d.Tick(step))
	}

	for i := 0; i < n-1; i++ {
		require.Zero(t, log.frames[i].GlobeRotation, "frame %d rotated mid-transition", i)
	}
	assert.Greater(t, log.frames[n+4].GlobeRotation, float32(0), "rotation resumes once idle")
}

func TestDriver_MissDoesNothing(t *testing.T) {
	d, _ := newTestDriver(nearMarker)

	d.PointerDown(5, 5, ButtonPrimary)
	assert.Equal(t, Idle, d.Engine().State())

	// A miss while flying leaves the running flight alone.
	d.PointerDown(400, 400, ButtonPrimary)
	tr := d.Engine().Transition()
	d.PointerDown(5, 5, ButtonPrimary)
	assert.Same(t, tr, d.Engine().Transition())
}

func TestDriver_SecondaryResets(t *testing.T) {
	d, _ := newTestDriver(nearMarker)

	d.PointerDown(400, 400, ButtonSecondary)
	assert.Equal(t, Idle, d.Engine().State(), "reset at the overview is a no-op")

	d.PointerDown(400, 400, ButtonPrimary)
	for d.Engine().State() == Transitioning {
		require.NoError(t, d.Tick(step))
	}

	d.PointerDown(10, 10, ButtonSecondary)
	assert.Equal(t, KindReset, d.Engine().Kind())

	d.PointerDown(10, 10, ButtonNone)
	assert.Equal(t, KindReset, d.Engine().Kind())
}

func TestDriver_ResizeAffectsPicking(t *testing.T) {
	d, _ := newTestDriver(nearMarker)

	d.Resize(1600, 800)
	assert.Equal(t, 1600, d.Scene().Camera.Width)
	assert.Equal(t, 800, d.Scene().Camera.Height)

	// The old center pixel is now left of center and misses.
	_, ok := d.Scene().Pick(400, 400)
	assert.False(t, ok)
	_, ok = d.Scene().Pick(800, 400)
	assert.True(t, ok)
}

func TestDriver_RendererError(t *testing.T) {
	d, log := newTestDriver(cities)
	log.err = errors.New("device lost")

	err := d.Tick(step)
	assert.ErrorIs(t, err, log.err)
}

func TestDriver_NilRendererAndNegativeDelta(t *testing.T) {
	scene := newTestScene(cities)
	d := NewDriver(scene, NewEngine(scene.Camera, DefaultEngineConfig()), &Rotation{Speed: 0.001}, nil)

	require.NoError(t, d.Tick(-time.Second))
	assert.Zero(t, d.Clock())
	assert.Equal(t, uint64(1), d.Frames())
}

func TestRendererFunc(t *testing.T) {
	var got *Frame
	r := RendererFunc(func(f *Frame) error {
		got = f
		return nil
	})

	scene := newTestScene(cities)
	d := NewDriver(scene, NewEngine(scene.Camera, DefaultEngineConfig()), &Rotation{}, r)
	require.NoError(t, d.Tick(step))

	require.NotNil(t, got)
	assert.Equal(t, scene.Camera.ViewMatrix(), got.View)
	assert.Equal(t, scene.Globe.Transform(), got.GlobeTransform)
}

// flyToNear picks the single test marker and runs the flight to completion.
func flyToNear(t *testing.T, d *Driver) {
	t.Helper()
	d.PointerDown(400, 400, ButtonPrimary)
	require.Equal(t, Transitioning, d.Engine().State())
	for d.Engine().State() == Transitioning {
		require.NoError(t, d.Tick(step))
	}
}

func TestDriver_FocusFollowsRotatingMarker(t *testing.T) {
	d, _ := newTestDriver(nearMarker)
	marker := d.Scene().Markers.Markers()[0]
	flyToNear(t, d)

	cam := d.Scene().Camera
	dist := cam.Distance()
	for i := 0; i < 500; i++ {
		require.NoError(t, d.Tick(step))
	}

	require.InDelta(t, 0.501, d.Scene().Globe.Rotation, 1e-4)
	assert.True(t, cam.Target.ApproxEqual(d.Scene().MarkerWorld(marker), eps),
		"target %v drifted from marker %v", cam.Target, d.Scene().MarkerWorld(marker))
	assert.InDelta(t, dist, cam.Distance(), 1e-3)

	// The marker stays under the screen center.
	ndc := cam.ViewProjection().TransformVec3(d.Scene().MarkerWorld(marker))
	assert.InDelta(t, 0, ndc.X, 1e-3)
	assert.InDelta(t, 0, ndc.Y, 1e-3)
}

func TestDriver_ResetStopsFollowing(t *testing.T) {
	d, _ := newTestDriver(nearMarker)
	flyToNear(t, d)

	require.True(t, d.Reset())
	for d.Engine().State() == Transitioning {
		require.NoError(t, d.Tick(step))
	}
	pos := d.Scene().Camera.Position

	for i := 0; i < 50; i++ {
		require.NoError(t, d.Tick(step))
	}
	assert.Equal(t, math.Zero, d.Scene().Camera.Target)
	assert.Equal(t, pos, d.Scene().Camera.Position, "camera stays put at the overview")
	assert.False(t, d.Reset(), "second reset at the overview is a no-op")
}

func TestDriver_DragOrbitsWhileIdle(t *testing.T) {
	d, _ := newTestDriver(nearMarker)
	cam := d.Scene().Camera
	cam.Controls.MaxDistance = 100
	before := cam.Position
	dist := cam.Distance()

	assert.True(t, d.PointerDrag(40, 10))
	assert.NotEqual(t, before, cam.Position)
	assert.InDelta(t, dist, cam.Distance(), 1e-3)
	assert.Equal(t, math.Zero, cam.Target)

	assert.True(t, d.Wheel(1))
	assert.InDelta(t, dist*0.9, cam.Distance(), 1e-3)
}

func TestDriver_OrbitInputIgnoredDuringTransition(t *testing.T) {
	d, _ := newTestDriver(nearMarker)
	cam := d.Scene().Camera

	d.PointerDown(400, 400, ButtonPrimary)
	require.NoError(t, d.Tick(step))
	pos, target := cam.Position, cam.Target

	assert.False(t, d.PointerDrag(100, 100))
	assert.False(t, d.Wheel(-3))
	assert.Equal(t, pos, cam.Position)
	assert.Equal(t, target, cam.Target)

	// The flight still lands where it would have.
	for d.Engine().State() == Transitioning {
		require.NoError(t, d.Tick(step))
	}
	marker := d.Scene().Markers.Markers()[0]
	assert.True(t, cam.Target.ApproxEqual(d.Scene().MarkerWorld(marker), eps))
}
