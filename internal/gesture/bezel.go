package gesture

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

// BezelRecognizer classifies single-finger strokes that start inside the
// border band of the left, right or bottom screen edge.
type BezelRecognizer struct {
	instance int
	screen   Screen
	border   float64
	settings *config.Settings
	keyboard bool
	flick    FlickClassifier
	phase    Phase
	state    State
	finger   int
	blocked  bool
	log      zerolog.Logger
}

// NewBezelRecognizer creates an edge recognizer instance
func NewBezelRecognizer(instance int, screen Screen, s *config.Settings, log zerolog.Logger) *BezelRecognizer {
	return &BezelRecognizer{
		instance: instance,
		screen:   screen,
		border:   s.GestureBorderSize,
		settings: s,
		flick:    NewFlickClassifier(s.FlickMinDelta, s.FlickMaxDelta, s.FlickDeadZone),
		log:      log,
	}
}

// Instance returns the recognizer instance id
func (r *BezelRecognizer) Instance() int { return r.instance }

// Phase returns the current phase
func (r *BezelRecognizer) Phase() Phase { return r.phase }

// State returns a copy of the gesture state
func (r *BezelRecognizer) State() State { return r.state }

// SetKeyboardOpen selects the larger trigger distance while an on-screen
// keyboard is shown
func (r *BezelRecognizer) SetKeyboardOpen(open bool) {
	r.keyboard = open
}

func (r *BezelRecognizer) threshold() float64 {
	return r.settings.TriggerDistance(r.keyboard)
}

// Recognize applies one frame
func (r *BezelRecognizer) Recognize(f touch.Frame) (Event, bool) {
	active := f.ActiveCount()

	// After a multi-finger cancel nothing starts until every finger lifts
	if r.blocked {
		if active == 0 {
			r.blocked = false
		}
		return Event{}, false
	}

	if r.phase == MayBeGesture || r.phase == Triggered {
		return r.track(f, active)
	}

	if len(f.Points) == 0 {
		return Event{}, false
	}
	if len(f.Points) > 1 {
		r.blocked = active > 0
		return Event{}, false
	}
	if p := f.Points[0]; p.State == touch.Pressed {
		r.begin(p)
	}
	return Event{}, false
}

func (r *BezelRecognizer) begin(p touch.TouchPoint) {
	r.reset()
	edge := r.candidate(p.StartPosition)
	if edge == EdgeNone {
		r.phase = Canceled
		r.log.Debug().Float64("x", p.StartPosition.X).Float64("y", p.StartPosition.Y).
			Msg("stroke starts in screen interior")
		return
	}

	r.phase = MayBeGesture
	r.finger = p.ID
	r.state = State{
		Start:        p.StartPosition,
		Position:     p.Position,
		LastPosition: p.Position,
		Edge:         edge,
	}
}

// candidate returns the edge whose border band contains start. Bottom
// candidates exclude the corners shared with the side bands.
func (r *BezelRecognizer) candidate(start types.Point) Edge {
	b := r.screen.CanonicalBounds()
	switch {
	case start.X <= b.X+r.border:
		return EdgeLeft
	case start.X >= b.X+b.Width-r.border:
		return EdgeRight
	case start.Y >= b.Y+b.Height-r.border:
		return EdgeBottom
	default:
		return EdgeNone
	}
}

// exceeds reports whether the total displacement is far enough and
// dominant along the axis perpendicular to the edge
func (r *BezelRecognizer) exceeds(d types.Point) bool {
	t := r.threshold()
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch r.state.Edge {
	case EdgeLeft:
		return d.X >= t && ax >= ay
	case EdgeRight:
		return -d.X >= t && ax >= ay
	case EdgeBottom:
		return -d.Y >= t && ay >= ax
	default:
		return false
	}
}

func (r *BezelRecognizer) track(f touch.Frame, active int) (Event, bool) {
	if len(f.Points) > 1 {
		r.blocked = active > 0
		return r.cancel("multiple fingers")
	}
	p, ok := f.Point(r.finger)
	if !ok {
		return r.cancel("tracked finger lost")
	}

	moved := p.Position != r.state.Position
	if moved {
		r.state.LastPosition = r.state.Position
		r.state.Position = p.Position
	}
	total := r.state.Position.Sub(r.state.Start)

	if p.State == touch.Released {
		if r.phase != Triggered && !r.exceeds(total) {
			return r.cancel("released before trigger distance")
		}
		if moved {
			r.updateFlick()
		}
		r.phase = Finished
		ev := r.event(Finish)
		r.reset()
		return ev, true
	}

	if r.phase == MayBeGesture {
		if !r.exceeds(total) {
			return Event{}, false
		}
		r.phase = Triggered
		r.updateFlick()
		return r.event(Start), true
	}

	if moved {
		r.updateFlick()
	}
	return r.event(Update), true
}

func (r *BezelRecognizer) updateFlick() {
	d := r.state.Position.Sub(r.state.LastPosition)
	if r.state.Edge == EdgeBottom {
		r.state.Flick = r.flick.Classify(d.Y)
		return
	}
	r.state.Flick = r.flick.Classify(d.X)
}

func (r *BezelRecognizer) cancel(reason string) (Event, bool) {
	started := r.phase == Triggered
	r.phase = Canceled
	ev := r.event(Cancel)
	r.log.Debug().Str("reason", reason).Str("edge", r.state.Edge.String()).Msg("edge gesture canceled")
	r.reset()
	return ev, started
}

// reset clears the per-cycle state; the phase is left for the caller
func (r *BezelRecognizer) reset() {
	r.state = State{}
	r.flick.Reset()
	r.finger = 0
}

func (r *BezelRecognizer) event(t Transition) Event {
	return Event{
		Kind:       KindEdge,
		Instance:   r.instance,
		Transition: t,
		Phase:      r.phase,
		Edge:       r.state.Edge,
		Flick:      r.state.Flick,
		Start:      r.state.Start,
		Position:   r.state.Position,
	}
}
