package gesture

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

// SwitchResult is the per-frame verdict of the card-switch recognizer
type SwitchResult int

const (
	ResultIgnore SwitchResult = iota
	ResultMayBeGesture
	ResultTriggerGesture
	ResultFinishGesture
	ResultCancelGesture
)

// String returns the string representation of a SwitchResult
func (r SwitchResult) String() string {
	switch r {
	case ResultIgnore:
		return "ignore"
	case ResultMayBeGesture:
		return "maybe"
	case ResultTriggerGesture:
		return "trigger"
	case ResultFinishGesture:
		return "finish"
	case ResultCancelGesture:
		return "cancel"
	default:
		return "unknown"
	}
}

// CardSwitchRecognizer recognizes left and right edge strokes used to move
// between card windows. It works on raw panel coordinates and remaps them
// per orientation itself.
type CardSwitchRecognizer struct {
	instance int
	screen   Screen
	border   float64
	settings *config.Settings
	keyboard bool
	phase    Phase
	result   SwitchResult
	finger   int
	edge     Edge
	start    types.Point
	pos      types.Point
	log      zerolog.Logger
}

// NewCardSwitchRecognizer creates a card-switch recognizer instance
func NewCardSwitchRecognizer(instance int, screen Screen, s *config.Settings, log zerolog.Logger) *CardSwitchRecognizer {
	return &CardSwitchRecognizer{
		instance: instance,
		screen:   screen,
		border:   s.GestureBorderSize,
		settings: s,
		log:      log,
	}
}

// Instance returns the recognizer instance id
func (r *CardSwitchRecognizer) Instance() int { return r.instance }

// Phase returns the current phase
func (r *CardSwitchRecognizer) Phase() Phase { return r.phase }

// Result returns the verdict of the last frame
func (r *CardSwitchRecognizer) Result() SwitchResult { return r.result }

// SetKeyboardOpen selects the larger trigger distance while an on-screen
// keyboard is shown
func (r *CardSwitchRecognizer) SetKeyboardOpen(open bool) {
	r.keyboard = open
}

// orient remaps a raw point for the current orientation and returns the
// horizontal bounds the edge bands are measured against
func (r *CardSwitchRecognizer) orient(raw types.Point) (p types.Point, lo, hi float64) {
	panel := r.screen.Raw()
	switch r.screen.Orientation() {
	case types.OrientationDown:
		return types.Point{X: -raw.X, Y: -raw.Y}, -panel.Width, 0
	case types.OrientationLeft:
		return types.Point{X: raw.Y, Y: -raw.X}, 0, panel.Height
	case types.OrientationRight:
		return types.Point{X: -raw.Y, Y: raw.X}, -panel.Height, 0
	default:
		return raw, 0, panel.Width
	}
}

// Recognize applies one frame
func (r *CardSwitchRecognizer) Recognize(f touch.Frame) (Event, bool) {
	if r.phase == MayBeGesture || r.phase == Triggered {
		return r.track(f)
	}

	r.result = ResultIgnore
	if len(f.Points) != 1 || f.Points[0].State != touch.Pressed {
		return Event{}, false
	}

	p := f.Points[0]
	start, lo, hi := r.orient(p.RawStart)
	switch {
	case start.X <= lo+r.border:
		r.edge = EdgeLeft
	case start.X >= hi-r.border:
		r.edge = EdgeRight
	default:
		r.phase = Canceled
		return Event{}, false
	}

	r.phase = MayBeGesture
	r.result = ResultMayBeGesture
	r.finger = p.ID
	r.start = start
	r.pos = start
	return Event{}, false
}

func (r *CardSwitchRecognizer) track(f touch.Frame) (Event, bool) {
	p, ok := f.Point(r.finger)
	if len(f.Points) > 1 || !ok {
		return r.cancel()
	}

	r.pos, _, _ = r.orient(p.Raw)
	d := r.pos.Sub(r.start)

	if p.State == touch.Released {
		if r.phase != Triggered {
			return r.cancel()
		}
		r.phase = Finished
		r.result = ResultFinishGesture
		ev := r.event(Finish)
		r.edge = EdgeNone
		return ev, true
	}

	if r.phase == Triggered {
		r.result = ResultTriggerGesture
		return Event{}, false
	}

	if !r.exceeds(d) {
		r.result = ResultMayBeGesture
		return Event{}, false
	}
	r.phase = Triggered
	r.result = ResultTriggerGesture
	r.log.Debug().Str("edge", r.edge.String()).Msg("card switch triggered")
	return r.event(Start), true
}

func (r *CardSwitchRecognizer) exceeds(d types.Point) bool {
	t := r.settings.TriggerDistance(r.keyboard)
	if math.Abs(d.X) < math.Abs(d.Y) {
		return false
	}
	if r.edge == EdgeLeft {
		return d.X >= t
	}
	return -d.X >= t
}

func (r *CardSwitchRecognizer) cancel() (Event, bool) {
	started := r.phase == Triggered
	r.phase = Canceled
	r.result = ResultCancelGesture
	ev := r.event(Cancel)
	r.edge = EdgeNone
	return ev, started
}

func (r *CardSwitchRecognizer) event(t Transition) Event {
	dir := types.DirRight
	if r.edge == EdgeLeft {
		dir = types.DirLeft
	}
	return Event{
		Kind:       KindCardSwitch,
		Instance:   r.instance,
		Transition: t,
		Phase:      r.phase,
		Edge:       r.edge,
		Start:      r.start,
		Position:   r.pos,
		Direction:  dir,
		Result:     r.result,
	}
}
