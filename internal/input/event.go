package input

import (
	"github.com/yourusername/cardshell/internal/gesture"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

// Event is the closed set of inputs the router dispatches on:
// KeyEvent, TouchEvent, GestureEvent and OrientationEvent.
type Event interface {
	event()
}

// KeyEvent is a hardware or gesture-area key transition
type KeyEvent struct {
	Key        Key
	Pressed    bool
	AutoRepeat bool
}

// TouchEvent carries one assembled touch frame
type TouchEvent struct {
	Frame touch.Frame
}

// GestureEvent carries a classified gesture step
type GestureEvent struct {
	Gesture gesture.Event
}

// OrientationEvent reports a device rotation
type OrientationEvent struct {
	Orientation types.Orientation
}

func (KeyEvent) event()         {}
func (TouchEvent) event()       {}
func (GestureEvent) event()     {}
func (OrientationEvent) event() {}
