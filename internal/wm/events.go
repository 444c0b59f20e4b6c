package wm

import (
	"time"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/types"
)

// EventKind is the column of the transition table
type EventKind int

const (
	EvMinimize EventKind = iota
	EvMaximize
	EvSwitchCard
	EvChangeCard
	EvTap
	EvPointerPress
	EvPointerMove
	EvPointerRelease
	EvTick
	EvSwitchGesture
	EvMinimizeGesture
	EvSpreadGesture
	EvSpreadOpen
	EvCardAdded
	EvPlacementDone
	EvContentReady
	EvCardClosed
	EvFocusRequest
	EvFocusAck
	EvModalLaunched
	EvModalDismissed
	EvOrientation
	EvScenePrepare
)

var eventNames = map[EventKind]string{
	EvMinimize:        "minimize",
	EvMaximize:        "maximize",
	EvSwitchCard:      "switch-card",
	EvChangeCard:      "change-card",
	EvTap:             "tap",
	EvPointerPress:    "pointer-press",
	EvPointerMove:     "pointer-move",
	EvPointerRelease:  "pointer-release",
	EvTick:            "tick",
	EvSwitchGesture:   "switch-gesture",
	EvMinimizeGesture: "minimize-gesture",
	EvSpreadGesture:   "spread-gesture",
	EvSpreadOpen:      "spread-open",
	EvCardAdded:       "card-added",
	EvPlacementDone:   "placement-done",
	EvContentReady:    "content-ready",
	EvCardClosed:      "card-closed",
	EvFocusRequest:    "focus-request",
	EvFocusAck:        "focus-ack",
	EvModalLaunched:   "modal-launched",
	EvModalDismissed:  "modal-dismissed",
	EvOrientation:     "orientation",
	EvScenePrepare:    "scene-prepare",
}

// String returns the event kind name
func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event is one input to the card manager
type Event struct {
	Kind        EventKind
	Time        time.Time
	Window      cards.WindowID
	Direction   types.Direction
	Pos         types.Point
	Phase       intent.Phase
	Value       float64
	Orientation types.Orientation
	Reason      string
}

// FromIntent converts a router intent into a manager event. Intents the
// manager has no interest in report false.
func FromIntent(in intent.Intent) (Event, bool) {
	ev := Event{
		Window:      cards.WindowID(in.Window),
		Direction:   in.Direction,
		Pos:         in.Pos,
		Phase:       in.Phase,
		Value:       in.Value,
		Orientation: in.Orientation,
	}
	switch in.Kind {
	case intent.MinimizeActiveCard:
		ev.Kind = EvMinimize
	case intent.MaximizeActiveCard:
		ev.Kind = EvMaximize
	case intent.SwitchCard:
		ev.Kind = EvSwitchCard
	case intent.ChangeCardWindow:
		ev.Kind = EvChangeCard
	case intent.TapCard:
		ev.Kind = EvTap
	case intent.PointerPress:
		ev.Kind = EvPointerPress
	case intent.PointerMove:
		ev.Kind = EvPointerMove
	case intent.PointerRelease:
		ev.Kind = EvPointerRelease
	case intent.SwitchGesture:
		ev.Kind = EvSwitchGesture
	case intent.MinimizeGesture:
		ev.Kind = EvMinimizeGesture
	case intent.SpreadGesture:
		ev.Kind = EvSpreadGesture
	case intent.SpreadOpen:
		ev.Kind = EvSpreadOpen
	case intent.OrientationChanged:
		ev.Kind = EvOrientation
	default:
		return Event{}, false
	}
	return ev, true
}
