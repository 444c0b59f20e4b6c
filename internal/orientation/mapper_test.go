package orientation

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/types"
)

func newTestMapper() *Mapper {
	s := config.Defaults()
	return New(&s, zerolog.Nop())
}

func closeTo(a, b types.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

var allOrientations = []types.Orientation{
	types.OrientationUp,
	types.OrientationDown,
	types.OrientationLeft,
	types.OrientationRight,
}

func TestMapKnownPoints(t *testing.T) {
	m := newTestMapper() // 1024x768, left offset (0,-2), right offset (0,2)

	tests := []struct {
		name string
		o    types.Orientation
		raw  types.Point
		want types.Point
	}{
		{"up identity", types.OrientationUp, types.Point{X: 10, Y: 20}, types.Point{X: 10, Y: 20}},
		{"down mirrors both axes", types.OrientationDown, types.Point{X: 10, Y: 20}, types.Point{X: 1014, Y: 748}},
		{"left swaps axes", types.OrientationLeft, types.Point{X: 10, Y: 20}, types.Point{X: 20, Y: 1012}},
		{"right swaps axes", types.OrientationRight, types.Point{X: 10, Y: 20}, types.Point{X: 748, Y: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Map(tt.raw, tt.o)
			if err != nil {
				t.Fatalf("Map() error: %v", err)
			}
			if !closeTo(got, tt.want) {
				t.Errorf("Map(%v, %s) = %v, want %v", tt.raw, tt.o, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	m := newTestMapper()
	rng := rand.New(rand.NewSource(7))

	for _, o := range allOrientations {
		b := m.Bounds(o)
		for i := 0; i < 500; i++ {
			p := types.Point{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}
			raw, err := m.Unmap(p, o)
			if err != nil {
				t.Fatalf("Unmap(%v, %s) error: %v", p, o, err)
			}
			got, err := m.Map(raw, o)
			if err != nil {
				t.Fatalf("Map(%v, %s) error: %v", raw, o, err)
			}
			if !closeTo(got, p) {
				t.Fatalf("Map(Unmap(%v)) for %s = %v", p, o, got)
			}
		}
	}
}

func TestBoundsSwapForRotation(t *testing.T) {
	m := newTestMapper()
	if b := m.Bounds(types.OrientationLeft); b.Width != 768 || b.Height != 1024 {
		t.Errorf("Bounds(left) = %vx%v, want 768x1024", b.Width, b.Height)
	}
	if b := m.Bounds(types.OrientationDown); b.Width != 1024 || b.Height != 768 {
		t.Errorf("Bounds(down) = %vx%v, want 1024x768", b.Width, b.Height)
	}
}

func TestUnknownOrientation(t *testing.T) {
	m := newTestMapper()
	bad := types.Orientation(9)

	if _, err := m.Map(types.Point{}, bad); !errors.Is(err, ErrUnknownOrientation) {
		t.Errorf("Map() error = %v, want ErrUnknownOrientation", err)
	}
	if _, err := m.Unmap(types.Point{}, bad); !errors.Is(err, ErrUnknownOrientation) {
		t.Errorf("Unmap() error = %v, want ErrUnknownOrientation", err)
	}
	if err := m.SetOrientation(bad); !errors.Is(err, ErrUnknownOrientation) {
		t.Errorf("SetOrientation() error = %v, want ErrUnknownOrientation", err)
	}
	if m.Orientation() != types.OrientationUp {
		t.Errorf("Orientation() = %s after rejected change, want up", m.Orientation())
	}

	m.current = bad
	if _, ok := m.MapCurrent(types.Point{X: 1, Y: 1}); ok {
		t.Error("MapCurrent() handled input for unknown orientation")
	}
}
