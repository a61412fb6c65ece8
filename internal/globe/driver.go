package globe

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Button discriminates pointer actions.
type Button int

const (
	ButtonNone      Button = iota
	ButtonPrimary          // Pick a marker and fly to it
	ButtonSecondary        // Pull back to the overview
)

// Frame is what the driver hands to the renderer once per tick.
type Frame struct {
	Index uint64
	Clock time.Duration

	CameraPosition math.Vec3
	CameraTarget   math.Vec3
	View           math.Mat4
	Projection     math.Mat4

	GlobeRotation  float32
	GlobeTransform math.Mat4
}

// Renderer draws frames. It is the only output of the driver.
type Renderer interface {
	Render(f *Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f *Frame) error

// Render calls fn(f).
func (fn RendererFunc) Render(f *Frame) error {
	return fn(f)
}

// Driver runs one animation step per call to Tick and routes pointer input.
// Everything happens on the caller's goroutine.
type Driver struct {
	scene    *Scene
	engine   *Engine
	rotation *Rotation
	renderer Renderer

	// Marker the camera was last sent to. While it stays the orbit target
	// the camera turns with the globe so the marker stays framed.
	focus MarkerID

	clock  time.Duration
	frames uint64
	log    *zap.Logger
}

// NewDriver wires the components around a scene. renderer may be nil.
func NewDriver(scene *Scene, engine *Engine, rotation *Rotation, renderer Renderer) *Driver {
	return &Driver{
		scene:    scene,
		engine:   engine,
		rotation: rotation,
		renderer: renderer,
		log:      logger.Named("driver"),
	}
}

// Scene returns the driven scene.
func (d *Driver) Scene() *Scene { return d.scene }

// Engine returns the camera transition engine.
func (d *Driver) Engine() *Engine { return d.engine }

// Clock returns the animation time accumulated over all ticks.
func (d *Driver) Clock() time.Duration { return d.clock }

// Frames returns the number of ticks run so far.
func (d *Driver) Frames() uint64 { return d.frames }

// PointerDown handles a button press at pixel (x, y). Primary picks and flies
// to the hit marker; secondary resets. Misses and other buttons do nothing.
func (d *Driver) PointerDown(x, y float32, button Button) {
	switch button {
	case ButtonPrimary:
		hit, ok := d.scene.Pick(x, y)
		if !ok {
			d.log.Debug("pick missed", zap.Float32("x", x), zap.Float32("y", y))
			return
		}
		d.log.Debug("pick hit",
			zap.String("marker", hit.Marker.Point.Label),
			zap.Int("id", int(hit.Marker.ID)),
			zap.Float32("t", hit.T),
		)
		d.focus = hit.Marker.ID
		d.engine.FlyTo(hit.World)

	case ButtonSecondary:
		d.Reset()
	}
}

// Reset pulls the camera back to the overview. It reports whether a reset
// transition started.
func (d *Driver) Reset() bool {
	d.focus = 0
	return d.engine.Reset()
}

// PointerDrag orbits the camera around its target by a pointer delta in
// pixels. Ignored while a transition owns the camera position.
func (d *Driver) PointerDrag(dx, dy float32) bool {
	if d.engine.State() != Idle {
		return false
	}
	d.scene.Camera.HandleDrag(dx, dy)
	return true
}

// Wheel zooms toward or away from the camera target. Ignored while a
// transition owns the camera position.
func (d *Driver) Wheel(notches float32) bool {
	if d.engine.State() != Idle {
		return false
	}
	d.scene.Camera.HandleZoom(notches)
	return true
}

// Resize updates the viewport used for projection and picking.
func (d *Driver) Resize(width, height int) {
	d.scene.Camera.SetViewport(width, height)
	d.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Tick advances the clock, the active transition and the idle rotation by
// one step, in that order, then renders.
func (d *Driver) Tick(dt time.Duration) error {
	if dt < 0 {
		dt = 0
	}
	d.clock += dt
	d.frames++

	before := d.scene.Globe.Rotation
	d.engine.Update(dt)
	d.rotation.Update(d.scene.Globe, dt, !d.engine.RotationSuppressed())
	d.follow(d.scene.Globe.Rotation - before)

	if d.renderer == nil {
		return nil
	}
	return d.renderer.Render(d.frame())
}

// follow turns the camera with the globe by angle while it is idle and still
// focused on the picked marker, and re-derives the target from that marker.
func (d *Driver) follow(angle float32) {
	if d.focus == 0 || d.engine.State() != Idle || !d.engine.Focused() {
		return
	}
	m, ok := d.scene.Markers.ByID(d.focus)
	if !ok {
		d.focus = 0
		return
	}
	cam := d.scene.Camera
	cam.Position = math.RotateY(angle).TransformVec3(cam.Position)
	cam.Target = d.scene.MarkerWorld(m)
}

func (d *Driver) frame() *Frame {
	cam := d.scene.Camera
	return &Frame{
		Index:          d.frames,
		Clock:          d.clock,
		CameraPosition: cam.Position,
		CameraTarget:   cam.Target,
		View:           cam.ViewMatrix(),
		Projection:     cam.ProjectionMatrix(),
		GlobeRotation:  d.scene.Globe.Rotation,
		GlobeTransform: d.scene.Globe.Transform(),
	}
}
