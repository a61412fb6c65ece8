package globe

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/tween"
	"github.com/Faultbox/midgard-globe/internal/logger"
	"github.com/Faultbox/midgard-globe/pkg/math"
)

// State is the camera transition engine state.
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Kind names what started the active transition.
type Kind int

const (
	KindNone Kind = iota
	KindFlyTo
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindFlyTo:
		return "fly-to"
	case KindReset:
		return "reset"
	default:
		return "none"
	}
}

// EngineConfig holds the flight tuning constants.
type EngineConfig struct {
	LegDuration   time.Duration
	TransitScale  float32 // High waypoint = marker * TransitScale
	ApproachScale float32 // Final stop = marker * ApproachScale
	ResetScale    float32 // Pull-back point = camera * ResetScale
	Easing        tween.Easing
}

// DefaultEngineConfig returns the stock flight constants.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		LegDuration:   time.Second,
		TransitScale:  2.0,
		ApproachScale: 1.2,
		ResetScale:    1.7,
		Easing:        tween.QuadraticInOut,
	}
}

// Engine owns the camera position and orbit target and runs at most one
// Transition at a time. A new trigger cancels the running one.
type Engine struct {
	cam    *camera.Camera
	cfg    EngineConfig
	active *tween.Transition
	kind   Kind
	log    *zap.Logger
}

// NewEngine creates an idle engine driving cam.
func NewEngine(cam *camera.Camera, cfg EngineConfig) *Engine {
	if cfg.Easing == nil {
		cfg.Easing = tween.QuadraticInOut
	}
	return &Engine{
		cam: cam,
		cfg: cfg,
		log: logger.Named("camera"),
	}
}

// State reports Transitioning while a transition is active.
func (e *Engine) State() State {
	if e.active != nil {
		return Transitioning
	}
	return Idle
}

// Kind returns what started the active transition, or KindNone when idle.
func (e *Engine) Kind() Kind {
	if e.active == nil {
		return KindNone
	}
	return e.kind
}

// RotationSuppressed is derived from State; idle rotation runs only while Idle.
func (e *Engine) RotationSuppressed() bool {
	return e.State() == Transitioning
}

// Focused reports whether the orbit target has moved off the globe center.
func (e *Engine) Focused() bool {
	return e.cam.Target != math.Zero
}

// Transition exposes the active transition for inspection. Nil when idle.
func (e *Engine) Transition() *tween.Transition {
	return e.active
}

// FlyTo flies the camera to target in two legs: out to a high waypoint above
// the target, then down to a stop just outside it. The orbit target moves to
// target only when the second leg completes.
func (e *Engine) FlyTo(target math.Vec3) {
	start := e.cam.Position
	transit := target.Scale(e.cfg.TransitScale)
	approach := target.Scale(e.cfg.ApproachScale)

	e.start(KindFlyTo,
		tween.Leg{
			From:     start,
			To:       transit,
			Duration: e.cfg.LegDuration,
			Easing:   e.cfg.Easing,
			OnUpdate: func(v math.Vec3) {
				e.cam.Position = v
				e.cam.Target = math.Zero
			},
		},
		tween.Leg{
			From:     transit,
			To:       approach,
			Duration: e.cfg.LegDuration,
			Easing:   e.cfg.Easing,
			OnUpdate: func(v math.Vec3) {
				e.cam.Position = v
			},
			OnComplete: func() {
				e.cam.Target = target
			},
		},
	)
}

// Reset pulls the camera back along its current direction and re-centers the
// orbit target on the globe. Returns false, doing nothing, when the engine is
// idle and already centered.
func (e *Engine) Reset() bool {
	if e.active == nil && !e.Focused() {
		e.log.Debug("reset ignored, already at overview")
		return false
	}

	start := e.cam.Position
	e.start(KindReset, tween.Leg{
		From:     start,
		To:       start.Scale(e.cfg.ResetScale),
		Duration: e.cfg.LegDuration,
		Easing:   e.cfg.Easing,
		OnUpdate: func(v math.Vec3) {
			e.cam.Position = v
			e.cam.Target = math.Zero
		},
	})
	return true
}

// Update advances the active transition by dt. No-op when idle.
func (e *Engine) Update(dt time.Duration) {
	tr := e.active
	if tr == nil {
		return
	}
	if tr.Advance(dt) && e.active == tr {
		e.active = nil
		e.log.Debug("transition completed",
			zap.Stringer("kind", e.kind),
			zap.Float32s("position", posFields(e.cam.Position)),
			zap.Float32s("target", posFields(e.cam.Target)),
		)
		e.kind = KindNone
	}
}

// start replaces any active transition. The old one is dropped without
// running its remaining callbacks.
func (e *Engine) start(kind Kind, legs ...tween.Leg) {
	if e.active != nil {
		e.log.Debug("transition cancelled",
			zap.Stringer("kind", e.kind),
			zap.Int("leg", e.active.Leg()),
			zap.Float32("progress", e.active.Progress()),
		)
	}

	e.active = tween.NewTransition(legs...)
	e.kind = kind

	e.log.Debug("transition started",
		zap.Stringer("kind", kind),
		zap.Int("legs", len(legs)),
		zap.Float32s("from", posFields(e.cam.Position)),
	)
}

func posFields(v math.Vec3) []float32 {
	return []float32{v.X, v.Y, v.Z}
}
