package types

import "testing"

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{
			name: "origin rect",
			rect: Rect{X: 0, Y: 0, Width: 100, Height: 100},
			want: Point{X: 50, Y: 50},
		},
		{
			name: "offset rect",
			rect: Rect{X: 100, Y: 200, Width: 50, Height: 80},
			want: Point{X: 125, Y: 240},
		},
		{
			name: "zero size",
			rect: Rect{X: 10, Y: 20, Width: 0, Height: 0},
			want: Point{X: 10, Y: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Center()
			if got.X != tt.want.X || got.Y != tt.want.Y {
				t.Errorf("Center() = (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center point", Point{X: 50, Y: 50}, true},
		{"top-left corner", Point{X: 0, Y: 0}, true},
		{"bottom-right corner", Point{X: 100, Y: 100}, true},
		{"outside right", Point{X: 150, Y: 50}, false},
		{"outside left", Point{X: -10, Y: 50}, false},
		{"outside bottom", Point{X: 50, Y: 150}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestRectScaleKeepsCenter(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 200, Height: 100}
	s := r.Scale(0.5)
	if s.Center() != r.Center() {
		t.Errorf("Scale moved center: %v -> %v", r.Center(), s.Center())
	}
	if s.Width != 100 || s.Height != 50 {
		t.Errorf("Scale(0.5) size = %vx%v, want 100x50", s.Width, s.Height)
	}
}

func TestRectLerp(t *testing.T) {
	from := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	to := Rect{X: 100, Y: 50, Width: 30, Height: 10}

	if got := from.Lerp(to, 0); got != from {
		t.Errorf("Lerp(0) = %v, want %v", got, from)
	}
	if got := from.Lerp(to, 1); got != to {
		t.Errorf("Lerp(1) = %v, want %v", got, to)
	}
	mid := from.Lerp(to, 0.5)
	if mid.X != 50 || mid.Y != 25 || mid.Width != 20 {
		t.Errorf("Lerp(0.5) = %v", mid)
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirLeft, "left"},
		{DirRight, "right"},
		{DirUp, "up"},
		{DirDown, "down"},
		{Direction(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.dir.String(); got != tt.want {
				t.Errorf("Direction.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		wantDir Direction
		wantOK  bool
	}{
		{"left", DirLeft, true},
		{"right", DirRight, true},
		{"up", DirUp, true},
		{"down", DirDown, true},
		{"invalid", 0, false},
		{"LEFT", 0, false}, // case sensitive
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gotDir, gotOK := ParseDirection(tt.input)
			if gotDir != tt.wantDir || gotOK != tt.wantOK {
				t.Errorf("ParseDirection(%q) = (%v, %v), want (%v, %v)",
					tt.input, gotDir, gotOK, tt.wantDir, tt.wantOK)
			}
		})
	}
}

func TestDirectionStep(t *testing.T) {
	if DirLeft.Step() != -1 || DirRight.Step() != 1 {
		t.Errorf("horizontal steps = (%d, %d), want (-1, 1)", DirLeft.Step(), DirRight.Step())
	}
	if DirUp.Step() != 0 || DirDown.Step() != 0 {
		t.Error("vertical directions should not step the deck")
	}
	if DirLeft.Opposite() != DirRight || DirUp.Opposite() != DirDown {
		t.Error("Opposite() mismatch")
	}
}

func TestParseOrientation(t *testing.T) {
	for _, o := range []Orientation{OrientationUp, OrientationDown, OrientationLeft, OrientationRight} {
		got, ok := ParseOrientation(o.String())
		if !ok || got != o {
			t.Errorf("ParseOrientation(%q) = (%v, %v), want (%v, true)", o.String(), got, ok, o)
		}
	}
	if _, ok := ParseOrientation("sideways"); ok {
		t.Error("expected unknown orientation to fail")
	}
	if Orientation(7).Valid() {
		t.Error("Orientation(7) should be invalid")
	}
	if !OrientationLeft.Rotated() || OrientationDown.Rotated() {
		t.Error("Rotated() mismatch")
	}
}
