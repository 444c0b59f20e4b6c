package gesture

import (
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

// Kind identifies the recognizer that produced an event
type Kind int

const (
	KindEdge Kind = iota
	KindCardSwitch
	KindPinch
	KindTap
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindCardSwitch:
		return "cardswitch"
	case KindPinch:
		return "pinch"
	case KindTap:
		return "tap"
	default:
		return "unknown"
	}
}

// Edge is the screen edge a stroke started from
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeBottom
)

// String returns the string representation of an Edge
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Phase is the recognizer-instance state
type Phase int

const (
	Idle Phase = iota
	MayBeGesture
	Triggered
	Finished
	Canceled
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case MayBeGesture:
		return "maybe"
	case Triggered:
		return "triggered"
	case Finished:
		return "finished"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Transition is the lifecycle step an event reports
type Transition int

const (
	TransitionNone Transition = iota
	Start
	Update
	Finish
	Cancel
)

// String returns the string representation of a Transition
func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case Start:
		return "start"
	case Update:
		return "update"
	case Finish:
		return "finish"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// State is the mutable record carried by a recognizer instance.
// Flick is only meaningful while Edge is not EdgeNone.
type State struct {
	Start        types.Point
	Position     types.Point
	LastPosition types.Point
	Edge         Edge
	Flick        int
}

// Event is a classified gesture step
type Event struct {
	Kind       Kind
	Instance   int
	Transition Transition
	Phase      Phase
	Edge       Edge
	Flick      int
	Start      types.Point
	Position   types.Point
	Direction  types.Direction
	Result     SwitchResult
	Scale      float64
}

// Recognizer consumes frames and reports events worth delivering
type Recognizer interface {
	Recognize(f touch.Frame) (Event, bool)
	Instance() int
}

// Screen exposes the geometry recognizers classify against
type Screen interface {
	CanonicalBounds() types.Rect
	Raw() types.Rect
	Orientation() types.Orientation
}
