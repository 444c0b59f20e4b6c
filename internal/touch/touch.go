package touch

import (
	"time"

	"github.com/yourusername/cardshell/internal/types"
)

// SampleState is the hardware state of a single finger sample
type SampleState int

const (
	Down SampleState = iota
	Move
	Up
)

// String returns the string representation of a SampleState
func (s SampleState) String() string {
	switch s {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// ParseSampleState converts a string to SampleState
func ParseSampleState(s string) (SampleState, bool) {
	switch s {
	case "down":
		return Down, true
	case "move":
		return Move, true
	case "up":
		return Up, true
	default:
		return 0, false
	}
}

// Sample is one finger reading from a hardware scan, in raw panel pixels.
// A non-zero GestureKey marks a sample from the gesture area that carries
// a key code instead of a touch position.
type Sample struct {
	FingerID   int         `yaml:"finger" json:"finger"`
	X          float64     `yaml:"x" json:"x"`
	Y          float64     `yaml:"y" json:"y"`
	State      SampleState `yaml:"-" json:"state"`
	Timestamp  time.Time   `yaml:"-" json:"timestamp"`
	GestureKey int         `yaml:"gestureKey,omitempty" json:"gestureKey,omitempty"`
	VelocityX  float64     `yaml:"vx,omitempty" json:"vx,omitempty"`
	VelocityY  float64     `yaml:"vy,omitempty" json:"vy,omitempty"`
}

// PointState is the per-frame state of a tracked touch point
type PointState int

const (
	Pressed PointState = iota
	Moved
	Stationary
	Released
)

// String returns the string representation of a PointState
func (s PointState) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Moved:
		return "moved"
	case Stationary:
		return "stationary"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// TouchPoint is a finger as seen in one frame. Position and StartPosition
// are canonical (orientation mapped); Raw and RawStart are panel pixels.
type TouchPoint struct {
	ID            int
	Position      types.Point
	StartPosition types.Point
	Raw           types.Point
	RawStart      types.Point
	State         PointState
	Velocity      types.Point
	Started       time.Time
}

// Active reports whether the finger is still on the screen
func (p TouchPoint) Active() bool {
	return p.State != Released
}

// KeySample is a gesture-area key transition produced by a scan
type KeySample struct {
	Code    int
	Pressed bool
}

// Frame is the atomic result of applying one scan batch
type Frame struct {
	Time        time.Time
	Points      []TouchPoint // sorted by ID
	Keys        []KeySample
	Meta        bool // a finger rests in the meta band
	MetaChanged bool
}

// ActiveCount returns the number of fingers still down
func (f Frame) ActiveCount() int {
	n := 0
	for _, p := range f.Points {
		if p.Active() {
			n++
		}
	}
	return n
}

// Point returns the touch point with the given finger id
func (f Frame) Point(id int) (TouchPoint, bool) {
	for _, p := range f.Points {
		if p.ID == id {
			return p, true
		}
	}
	return TouchPoint{}, false
}

// Empty reports whether the frame carries nothing to deliver
func (f Frame) Empty() bool {
	return len(f.Points) == 0 && len(f.Keys) == 0 && !f.MetaChanged
}
