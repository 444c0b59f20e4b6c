package gesture

import (
	"github.com/yourusername/cardshell/internal/touch"
)

// PinchRecognizer reports the scale between two fingers relative to
// their distance when the second finger landed
type PinchRecognizer struct {
	instance  int
	ids       [2]int
	startDist float64
	scale     float64
	active    bool
}

// NewPinchRecognizer creates a pinch recognizer instance
func NewPinchRecognizer(instance int) *PinchRecognizer {
	return &PinchRecognizer{instance: instance, scale: 1}
}

// Instance returns the recognizer instance id
func (r *PinchRecognizer) Instance() int { return r.instance }

// Active reports whether a pinch is in progress
func (r *PinchRecognizer) Active() bool { return r.active }

// Recognize applies one frame
func (r *PinchRecognizer) Recognize(f touch.Frame) (Event, bool) {
	if !r.active {
		return r.begin(f)
	}

	a, okA := f.Point(r.ids[0])
	b, okB := f.Point(r.ids[1])
	if !okA || !okB || f.ActiveCount() > 2 {
		r.active = false
		return r.event(Cancel), true
	}

	r.scale = a.Position.Dist(b.Position) / r.startDist
	if !a.Active() || !b.Active() {
		r.active = false
		return r.event(Finish), true
	}
	return r.event(Update), true
}

func (r *PinchRecognizer) begin(f touch.Frame) (Event, bool) {
	if len(f.Points) != 2 || f.ActiveCount() != 2 {
		return Event{}, false
	}
	a, b := f.Points[0], f.Points[1]
	if a.State != touch.Pressed && b.State != touch.Pressed {
		return Event{}, false
	}
	d := a.Position.Dist(b.Position)
	if d < 1 {
		return Event{}, false
	}
	r.ids = [2]int{a.ID, b.ID}
	r.startDist = d
	r.scale = 1
	r.active = true
	return r.event(Start), true
}

func (r *PinchRecognizer) event(t Transition) Event {
	phase := Triggered
	switch t {
	case Finish:
		phase = Finished
	case Cancel:
		phase = Canceled
	}
	return Event{
		Kind:       KindPinch,
		Instance:   r.instance,
		Transition: t,
		Phase:      phase,
		Scale:      r.scale,
	}
}
