package types

// Orientation is the physical rotation of the device relative to logical "up".
type Orientation int

const (
	OrientationUp Orientation = iota
	OrientationDown
	OrientationLeft
	OrientationRight
)

// String returns the string representation of an Orientation
func (o Orientation) String() string {
	switch o {
	case OrientationUp:
		return "up"
	case OrientationDown:
		return "down"
	case OrientationLeft:
		return "left"
	case OrientationRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the four supported orientations
func (o Orientation) Valid() bool {
	return o >= OrientationUp && o <= OrientationRight
}

// Rotated reports whether the orientation swaps the screen axes
func (o Orientation) Rotated() bool {
	return o == OrientationLeft || o == OrientationRight
}

// ParseOrientation converts a string to Orientation
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "up":
		return OrientationUp, true
	case "down":
		return OrientationDown, true
	case "left":
		return OrientationLeft, true
	case "right":
		return OrientationRight, true
	default:
		return 0, false
	}
}
