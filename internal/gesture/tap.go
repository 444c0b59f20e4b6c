package gesture

import (
	"time"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/touch"
)

// TapRecognizer reports a single finger that lifts close to where it
// landed and soon enough
type TapRecognizer struct {
	instance    int
	slop        float64
	maxDuration time.Duration
	finger      int
	tracking    bool
}

// NewTapRecognizer creates a tap recognizer instance
func NewTapRecognizer(instance int, s *config.Settings) *TapRecognizer {
	return &TapRecognizer{
		instance:    instance,
		slop:        s.TapSlop,
		maxDuration: time.Duration(s.TapMaxDurationMs) * time.Millisecond,
	}
}

// Instance returns the recognizer instance id
func (r *TapRecognizer) Instance() int { return r.instance }

// Recognize applies one frame
func (r *TapRecognizer) Recognize(f touch.Frame) (Event, bool) {
	if !r.tracking {
		if len(f.Points) == 1 && f.Points[0].State == touch.Pressed {
			r.finger = f.Points[0].ID
			r.tracking = true
		}
		return Event{}, false
	}

	p, ok := f.Point(r.finger)
	if !ok || len(f.Points) > 1 {
		r.tracking = false
		return Event{}, false
	}
	if p.Position.Dist(p.StartPosition) > r.slop {
		r.tracking = false
		return Event{}, false
	}
	if p.State != touch.Released {
		return Event{}, false
	}

	r.tracking = false
	if !p.Started.IsZero() && f.Time.Sub(p.Started) > r.maxDuration {
		return Event{}, false
	}
	return Event{
		Kind:       KindTap,
		Instance:   r.instance,
		Transition: Finish,
		Phase:      Finished,
		Start:      p.StartPosition,
		Position:   p.Position,
	}, true
}
