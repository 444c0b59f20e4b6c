package orientation

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/types"
)

// ErrUnknownOrientation is returned for orientation values outside Up/Down/Left/Right
var ErrUnknownOrientation = errors.New("unknown orientation")

// Mapper converts raw panel coordinates into the canonical frame of the
// current device orientation. The raw panel is Width x Height in the Up
// orientation; Left and Right swap the axes.
type Mapper struct {
	width    float64
	height   float64
	offLeft  types.Point
	offRight types.Point
	current  types.Orientation
	log      zerolog.Logger
}

// New creates a mapper for the screen described by settings, starting Up
func New(s *config.Settings, log zerolog.Logger) *Mapper {
	return &Mapper{
		width:    s.ScreenWidth,
		height:   s.ScreenHeight,
		offLeft:  types.Point{X: s.OrientationOffsetLeftX, Y: s.OrientationOffsetLeftY},
		offRight: types.Point{X: s.OrientationOffsetRightX, Y: s.OrientationOffsetRightY},
		current:  types.OrientationUp,
		log:      log,
	}
}

// Orientation returns the current orientation
func (m *Mapper) Orientation() types.Orientation {
	return m.current
}

// SetOrientation changes the current orientation. Unknown values are
// rejected and the previous orientation is kept.
func (m *Mapper) SetOrientation(o types.Orientation) error {
	if !o.Valid() {
		m.log.Warn().Int("orientation", int(o)).Msg("ignoring unknown orientation")
		return ErrUnknownOrientation
	}
	m.current = o
	return nil
}

// Raw returns the raw panel size
func (m *Mapper) Raw() types.Rect {
	return types.Rect{Width: m.width, Height: m.height}
}

// Bounds returns the canonical screen bounds for o
func (m *Mapper) Bounds(o types.Orientation) types.Rect {
	if o.Rotated() {
		return types.Rect{Width: m.height, Height: m.width}
	}
	return types.Rect{Width: m.width, Height: m.height}
}

// CanonicalBounds returns the canonical screen bounds for the current orientation
func (m *Mapper) CanonicalBounds() types.Rect {
	return m.Bounds(m.current)
}

// Map converts a raw point into the canonical frame of orientation o.
// Down mirrors both axes about the center. Left and Right swap the axes,
// mirror one of them and apply the per-orientation bezel offset.
func (m *Mapper) Map(raw types.Point, o types.Orientation) (types.Point, error) {
	switch o {
	case types.OrientationUp:
		return raw, nil
	case types.OrientationDown:
		return types.Point{X: m.width - raw.X, Y: m.height - raw.Y}, nil
	case types.OrientationLeft:
		return types.Point{
			X: raw.Y + m.offLeft.X,
			Y: m.width - raw.X + m.offLeft.Y,
		}, nil
	case types.OrientationRight:
		return types.Point{
			X: m.height - raw.Y + m.offRight.X,
			Y: raw.X + m.offRight.Y,
		}, nil
	default:
		return types.Point{}, ErrUnknownOrientation
	}
}

// Unmap is the inverse of Map
func (m *Mapper) Unmap(p types.Point, o types.Orientation) (types.Point, error) {
	switch o {
	case types.OrientationUp:
		return p, nil
	case types.OrientationDown:
		return types.Point{X: m.width - p.X, Y: m.height - p.Y}, nil
	case types.OrientationLeft:
		return types.Point{
			X: m.width - (p.Y - m.offLeft.Y),
			Y: p.X - m.offLeft.X,
		}, nil
	case types.OrientationRight:
		return types.Point{
			X: p.Y - m.offRight.Y,
			Y: m.height - (p.X - m.offRight.X),
		}, nil
	default:
		return types.Point{}, ErrUnknownOrientation
	}
}

// MapCurrent maps raw with the current orientation. It returns false when
// the orientation is not one of the supported four and the event should
// be dropped.
func (m *Mapper) MapCurrent(raw types.Point) (types.Point, bool) {
	p, err := m.Map(raw, m.current)
	if err != nil {
		m.log.Warn().Int("orientation", int(m.current)).Msg("dropping input for unknown orientation")
		return types.Point{}, false
	}
	return p, true
}
