// Package input turns SDL events into the few events the viewer reacts to.
package input

import "github.com/veandco/go-sdl2/sdl"

type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventPointerDown
	EventPointerMove
	EventWheel
	EventKeyDown
)

// Button identifies the mouse button of a pointer event.
type Button int

const (
	ButtonOther Button = iota
	ButtonLeft
	ButtonRight
)

// Event is one translated SDL event. Only the fields of its Type are set.
type Event struct {
	Type EventType

	Key sdl.Scancode // EventKeyDown

	Width, Height int // EventWindowResize, window coordinates

	X, Y   float32 // EventPointerDown, window coordinates with origin top-left
	Button Button  // EventPointerDown; for EventPointerMove the held button

	DX, DY float32 // EventPointerMove, relative motion in window coordinates

	Wheel float32 // EventWheel, notches; positive scrolls away from the user
}

// Input drains the SDL queue once per frame into a reused buffer.
type Input struct {
	events []Event
}

func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains pending SDL events. It reports true once a quit request has
// been seen; events queued after the quit are left unread.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	for raw := sdl.PollEvent(); raw != nil; raw = sdl.PollEvent() {
		ev := translate(raw)
		if ev.Type == EventNone {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == EventQuit {
			return true
		}
	}
	return false
}

// Events returns what the last Update collected. The slice is reused.
func (i *Input) Events() []Event {
	return i.events
}

func translate(raw sdl.Event) Event {
	switch e := raw.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}
		}
	case *sdl.KeyboardEvent:
		// Auto-repeat would restart a reset every few frames.
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}
		}
	case *sdl.MouseMotionEvent:
		held := ButtonOther
		switch {
		case e.State&leftMask != 0:
			held = ButtonLeft
		case e.State&rightMask != 0:
			held = ButtonRight
		}
		return Event{Type: EventPointerMove, X: float32(e.X), Y: float32(e.Y),
			DX: float32(e.XRel), DY: float32(e.YRel), Button: held}
	case *sdl.MouseWheelEvent:
		notches := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			notches = -notches
		}
		if notches != 0 {
			return Event{Type: EventWheel, Wheel: notches}
		}
	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			return Event{Type: EventPointerDown, X: float32(e.X), Y: float32(e.Y), Button: button(e.Button)}
		}
	}
	return Event{}
}

const (
	leftMask  = 1 << (sdl.BUTTON_LEFT - 1)
	rightMask = 1 << (sdl.BUTTON_RIGHT - 1)
)

func button(b uint8) Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return ButtonLeft
	case sdl.BUTTON_RIGHT:
		return ButtonRight
	}
	return ButtonOther
}
