package tween

import (
	"time"

	"github.com/Faultbox/midgard-globe/pkg/math"
)

// Leg is one eased interpolation from From to To.
type Leg struct {
	From     math.Vec3
	To       math.Vec3
	Duration time.Duration
	Easing   Easing // nil means Linear

	// OnUpdate receives the interpolated value on every step of the leg,
	// including the final one where the value equals To.
	OnUpdate func(v math.Vec3)

	// OnComplete runs once, right after the final OnUpdate of the leg.
	OnComplete func()
}

// Value returns the leg's interpolated value at normalized time t.
func (l *Leg) Value(t float32) math.Vec3 {
	ease := l.Easing
	if ease == nil {
		ease = Linear
	}
	return l.From.Lerp(l.To, ease(clamp01(t)))
}

// Transition is an ordered sequence of legs with a cursor.
// It is advanced explicitly; nothing runs in the background. Dropping a
// Transition cancels it: no further callbacks fire.
type Transition struct {
	legs    []Leg
	index   int
	elapsed time.Duration
}

// NewTransition creates a transition over the given legs, positioned at the
// start of the first leg.
func NewTransition(legs ...Leg) *Transition {
	return &Transition{legs: legs}
}

// Advance moves the cursor forward by dt and fires the callbacks of every leg
// it touches. Time left over after a leg completes carries into the next leg.
// Returns true once the last leg has completed.
func (tr *Transition) Advance(dt time.Duration) bool {
	for !tr.Done() {
		leg := &tr.legs[tr.index]
		tr.elapsed += dt

		if tr.elapsed < leg.Duration {
			t := float32(tr.elapsed) / float32(leg.Duration)
			if leg.OnUpdate != nil {
				leg.OnUpdate(leg.Value(t))
			}
			return false
		}

		dt = tr.elapsed - leg.Duration
		tr.index++
		tr.elapsed = 0

		if leg.OnUpdate != nil {
			leg.OnUpdate(leg.To)
		}
		if leg.OnComplete != nil {
			leg.OnComplete()
		}

		if dt == 0 {
			break
		}
	}
	return tr.Done()
}

// Done reports whether every leg has completed.
func (tr *Transition) Done() bool {
	return tr.index >= len(tr.legs)
}

// Leg returns the index of the leg in progress, or Len() when done.
func (tr *Transition) Leg() int {
	return tr.index
}

// Len returns the number of legs.
func (tr *Transition) Len() int {
	return len(tr.legs)
}

// Progress returns normalized time within the current leg.
func (tr *Transition) Progress() float32 {
	if tr.Done() {
		return 1
	}
	d := tr.legs[tr.index].Duration
	if d <= 0 {
		return 0
	}
	return float32(tr.elapsed) / float32(d)
}

// Duration returns the total scripted duration of all legs.
func (tr *Transition) Duration() time.Duration {
	var total time.Duration
	for _, l := range tr.legs {
		total += l.Duration
	}
	return total
}
