package rendering

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/cards"
)

type notification struct {
	window  cards.WindowID
	enabled bool
}

type recorder struct {
	calls []notification
	flags map[cards.WindowID]bool
}

func newRecorder() *recorder {
	return &recorder{flags: make(map[cards.WindowID]bool)}
}

func (r *recorder) notify(w cards.WindowID, enabled bool) {
	r.calls = append(r.calls, notification{w, enabled})
	r.flags[w] = enabled
}

func (r *recorder) enabledCount() int {
	n := 0
	for _, on := range r.flags {
		if on {
			n++
		}
	}
	return n
}

type gate struct{ active bool }

func (g *gate) SceneTransitionActive() bool { return g.active }

func TestHandoffOnSameLayer(t *testing.T) {
	rec := newRecorder()
	a := NewArbiter(3, rec.notify, zerolog.Nop())

	if err := a.Request(LayerCard, 1, true, false); err != nil {
		t.Fatal(err)
	}
	before := a.Transitions()
	rec.calls = nil

	if err := a.Request(LayerCard, 2, true, false); err != nil {
		t.Fatal(err)
	}
	if got := a.Transitions() - before; got != 1 {
		t.Errorf("transitions for handoff = %d, want 1", got)
	}
	want := []notification{{1, false}, {2, true}}
	if len(rec.calls) != 2 || rec.calls[0] != want[0] || rec.calls[1] != want[1] {
		t.Errorf("notifications = %v, want %v", rec.calls, want)
	}
	if rec.flags[1] || !rec.flags[2] {
		t.Errorf("flags = %v, want only window 2", rec.flags)
	}
}

func TestPriorityOrder(t *testing.T) {
	rec := newRecorder()
	a := NewArbiter(3, rec.notify, zerolog.Nop())

	a.Request(LayerSystem, 3, true, false)
	a.Request(LayerCard, 1, true, false)
	if w, layer, ok := a.Current(); !ok || w != 1 || layer != LayerCard {
		t.Errorf("Current() = %d, %d, %v, want window 1 on card layer", w, layer, ok)
	}

	// disabling ignores the layer argument
	a.Request(LayerSystem, 1, false, false)
	if w, layer, _ := a.Current(); w != 3 || layer != LayerSystem {
		t.Errorf("Current() = %d on %d, want window 3 on system layer", w, layer)
	}

	a.Request(LayerDock, 3, false, false)
	if _, _, ok := a.Current(); ok {
		t.Error("grant remains after every request cleared")
	}
	if rec.enabledCount() != 0 {
		t.Errorf("flags = %v, want none enabled", rec.flags)
	}
}

func TestSameRequestIsNoop(t *testing.T) {
	rec := newRecorder()
	a := NewArbiter(3, rec.notify, zerolog.Nop())
	a.Request(LayerCard, 1, true, false)
	n := a.Transitions()

	a.Request(LayerCard, 1, true, false)
	if a.Transitions() != n || len(rec.calls) != 1 {
		t.Errorf("repeat request changed state: transitions %d, calls %v", a.Transitions(), rec.calls)
	}

	a.Request(LayerCard, 1, true, true)
	if a.Transitions() != n+1 {
		t.Errorf("forced request transitions = %d, want %d", a.Transitions(), n+1)
	}
	last := rec.calls[len(rec.calls)-2:]
	if last[0] != (notification{1, false}) || last[1] != (notification{1, true}) {
		t.Errorf("forced request notifications = %v, want revoke then grant", last)
	}
}

func TestLayerOutOfRange(t *testing.T) {
	rec := newRecorder()
	a := NewArbiter(3, rec.notify, zerolog.Nop())
	a.Request(LayerCard, 1, true, false)

	for _, layer := range []int{-1, 3, 10} {
		if err := a.Request(layer, 2, true, false); !errors.Is(err, ErrLayerOutOfRange) {
			t.Errorf("Request(layer %d) error = %v, want ErrLayerOutOfRange", layer, err)
		}
	}
	if w, _, _ := a.Current(); w != 1 || len(rec.calls) != 1 {
		t.Error("out of range request changed state")
	}
	if err := a.Request(LayerCard, 0, true, false); !errors.Is(err, ErrNoWindow) {
		t.Errorf("Request(window 0) error = %v, want ErrNoWindow", err)
	}
}

func TestDeferredDuringTransition(t *testing.T) {
	rec := newRecorder()
	g := &gate{}
	a := NewArbiter(3, rec.notify, zerolog.Nop())
	a.SetGate(g)
	a.Request(LayerCard, 1, true, false)

	g.active = true
	if err := a.Request(LayerCard, 1, false, false); !errors.Is(err, ErrTransitionInProgress) {
		t.Fatalf("Request() during transition error = %v, want ErrTransitionInProgress", err)
	}
	if w, _, _ := a.Current(); w != 1 {
		t.Error("request applied during transition")
	}
	if a.Resume() != 0 {
		t.Error("Resume() replayed while transition still active")
	}

	g.active = false
	if n := a.Resume(); n != 1 {
		t.Errorf("Resume() = %d, want 1", n)
	}
	if _, _, ok := a.Current(); ok {
		t.Error("deferred disable not applied on resume")
	}
	if a.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", a.Pending())
	}
}

func TestAtMostOneGrant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rec := newRecorder()
	a := NewArbiter(3, rec.notify, zerolog.Nop())

	for i := 0; i < 2000; i++ {
		layer := rng.Intn(4) // layer 3 is out of range
		window := cards.WindowID(1 + rng.Intn(5))
		a.Request(layer, window, rng.Intn(3) != 0, rng.Intn(4) == 0)

		granted := 0
		for _, g := range a.Grants() {
			if g.Granted {
				granted++
			}
		}
		if granted > 1 {
			t.Fatalf("step %d: %d layers granted", i, granted)
		}
		if rec.enabledCount() > 1 {
			t.Fatalf("step %d: %d windows flagged for direct rendering", i, rec.enabledCount())
		}
	}
}
