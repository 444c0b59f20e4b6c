package wm

import (
	"math"
	"testing"
	"time"

	"github.com/yourusername/cardshell/internal/types"
)

func TestClosestSlot(t *testing.T) {
	slots := []slot{
		{Bounds: types.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		{Bounds: types.Rect{X: 200, Y: 0, Width: 100, Height: 100}},
		{Bounds: types.Rect{X: 400, Y: 0, Width: 100, Height: 100}},
	}

	tests := []struct {
		name  string
		point types.Point
		want  int
	}{
		{"on first center", types.Point{X: 50, Y: 50}, 0},
		{"nearer second", types.Point{X: 160, Y: 90}, 1},
		{"beyond last", types.Point{X: 900, Y: -40}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := closestSlot(tt.point, slots); got != tt.want {
				t.Errorf("closestSlot() = %d, want %d", got, tt.want)
			}
		})
	}

	if got := closestSlot(types.Point{}, nil); got != -1 {
		t.Errorf("closestSlot(nil) = %d, want -1", got)
	}
}

func TestAnimationProgress(t *testing.T) {
	start := time.Unix(0, 0)
	a := Animation{
		From:     types.Rect{X: 0, Width: 10, Height: 10},
		To:       types.Rect{X: 100, Width: 10, Height: 10},
		Start:    start,
		Duration: 100 * time.Millisecond,
	}

	tests := []struct {
		at   time.Duration
		want float64
		done bool
	}{
		{-10 * time.Millisecond, 0, false},
		{0, 0, false},
		{50 * time.Millisecond, 0.75, false},
		{100 * time.Millisecond, 1, true},
		{150 * time.Millisecond, 1, true},
	}

	for _, tt := range tests {
		now := start.Add(tt.at)
		if got := a.Progress(now); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Progress(%v) = %v, want %v", tt.at, got, tt.want)
		}
		if got := a.Done(now); got != tt.done {
			t.Errorf("Done(%v) = %v, want %v", tt.at, got, tt.done)
		}
	}

	if got := a.At(start.Add(50 * time.Millisecond)).X; math.Abs(got-75) > 1e-9 {
		t.Errorf("At(50ms).X = %v, want 75", got)
	}
}

func TestDeckLayoutCentersActiveCard(t *testing.T) {
	r := newRig(t)
	a := r.launch(t, "a")
	b := r.launch(t, "b")
	r.handle(Event{Kind: EvMinimize})

	wb, _ := r.m.Arena().Window(b)
	wa, _ := r.m.Arena().Window(a)
	if d := wb.Geometry.Center().Dist(r.m.Screen().Center()); d > 1e-9 {
		t.Errorf("active card center = %+v, want %+v", wb.Geometry.Center(), r.m.Screen().Center())
	}
	wantW := r.m.Screen().Width * r.m.settings.CardScale
	if math.Abs(wb.Geometry.Width-wantW) > 1e-9 {
		t.Errorf("card width = %v, want %v", wb.Geometry.Width, wantW)
	}
	gap := wb.Geometry.X - (wa.Geometry.X + wa.Geometry.Width)
	if math.Abs(gap-r.m.settings.CardSpacing) > 1e-9 {
		t.Errorf("card gap = %v, want %v", gap, r.m.settings.CardSpacing)
	}
}

func TestGroupStateFansTabs(t *testing.T) {
	r := newRig(t)
	a := r.launch(t, "a")
	b := r.launch(t, "b")
	r.handle(Event{Kind: EvMinimize})
	wa, _ := r.m.Arena().Window(a)
	r.m.Arena().Join(b, wa.Group)

	r.handle(Event{Kind: EvSpreadOpen, Value: 1.3})
	if r.m.State() != Group {
		t.Fatalf("State() = %v, want group", r.m.State())
	}

	wb, _ := r.m.Arena().Window(b)
	if wa.Geometry == wb.Geometry {
		t.Fatalf("tabs share geometry in group state")
	}
	got, ok := r.m.hitTest(wa.Geometry.Center())
	if !ok || got != a {
		t.Errorf("hitTest(tab a) = %d, %v, want %d", got, ok, a)
	}

	r.handle(Event{Kind: EvTap, Pos: wa.Geometry.Center()})
	if r.m.State() != Maximize || r.m.Arena().ActiveWindow() != a {
		t.Errorf("state=%v active=%d, want maximize with %d", r.m.State(), r.m.Arena().ActiveWindow(), a)
	}
}
