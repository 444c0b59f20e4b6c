package touch

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/types"
)

// Mapper converts raw panel coordinates into the canonical frame
type Mapper interface {
	MapCurrent(raw types.Point) (types.Point, bool)
}

type finger struct {
	point TouchPoint
	seen  bool
}

// Assembler turns per-scan sample batches into frames. Finger history is
// kept between scans so start positions and implicit lifts can be derived.
type Assembler struct {
	mapper  Mapper
	metaTop float64
	metaBot float64
	fingers map[int]*finger
	inMeta  map[int]bool // finger id -> seen in the current scan
	meta    bool
	log     zerolog.Logger
}

// NewAssembler creates an assembler. The meta band is the strip of raw
// rows [screenHeight, screenHeight+metaBand) below the visible panel.
func NewAssembler(m Mapper, screenHeight, metaBand float64, log zerolog.Logger) *Assembler {
	return &Assembler{
		mapper:  m,
		metaTop: screenHeight,
		metaBot: screenHeight + metaBand,
		fingers: make(map[int]*finger),
		inMeta:  make(map[int]bool),
		log:     log,
	}
}

// Tracking returns the number of on-screen fingers carried between scans
func (a *Assembler) Tracking() int {
	return len(a.fingers)
}

// Meta reports whether a finger currently rests in the meta band
func (a *Assembler) Meta() bool {
	return a.meta
}

// Apply applies a full scan batch and returns the resulting frame.
// Fingers tracked from earlier scans that are absent from the batch are
// lifted at their last position.
func (a *Assembler) Apply(batch []Sample) Frame {
	frame := Frame{}

	for _, f := range a.fingers {
		f.seen = false
	}
	for id := range a.inMeta {
		a.inMeta[id] = false
	}

	for _, s := range batch {
		if s.Timestamp.After(frame.Time) {
			frame.Time = s.Timestamp
		}

		if s.GestureKey != 0 {
			switch s.State {
			case Down:
				frame.Keys = append(frame.Keys, KeySample{Code: s.GestureKey, Pressed: true})
			case Up:
				frame.Keys = append(frame.Keys, KeySample{Code: s.GestureKey, Pressed: false})
			}
			continue
		}

		raw := types.Point{X: s.X, Y: s.Y}
		if a.applyMeta(s, raw) {
			continue
		}
		a.applyTouch(s, raw)
	}

	for id, f := range a.fingers {
		if f.seen {
			continue
		}
		a.log.Warn().Int("finger", id).Msg("finger missing from scan, lifting")
		f.point.State = Released
		f.point.Velocity = types.Point{}
		f.seen = true
	}
	for id, seen := range a.inMeta {
		if seen {
			continue
		}
		a.log.Warn().Int("finger", id).Msg("meta finger missing from scan, lifting")
		delete(a.inMeta, id)
	}

	frame.Points = make([]TouchPoint, 0, len(a.fingers))
	for id, f := range a.fingers {
		frame.Points = append(frame.Points, f.point)
		if f.point.State == Released {
			delete(a.fingers, id)
		}
	}
	sort.Slice(frame.Points, func(i, j int) bool {
		return frame.Points[i].ID < frame.Points[j].ID
	})

	meta := len(a.inMeta) > 0
	frame.Meta = meta
	frame.MetaChanged = meta != a.meta
	a.meta = meta

	return frame
}

// applyMeta handles samples that belong to the meta band and reports
// whether the sample was consumed.
func (a *Assembler) applyMeta(s Sample, raw types.Point) bool {
	if _, ok := a.inMeta[s.FingerID]; ok {
		if s.State == Up {
			delete(a.inMeta, s.FingerID)
		} else {
			a.inMeta[s.FingerID] = true
		}
		return true
	}
	if _, tracked := a.fingers[s.FingerID]; tracked {
		return false
	}
	if raw.Y < a.metaTop || raw.Y >= a.metaBot {
		return false
	}
	if s.State != Up {
		a.inMeta[s.FingerID] = true
	}
	return true
}

func (a *Assembler) applyTouch(s Sample, raw types.Point) {
	pos, ok := a.mapper.MapCurrent(raw)
	if !ok {
		return
	}
	vel := types.Point{X: s.VelocityX, Y: s.VelocityY}

	f, tracked := a.fingers[s.FingerID]
	if !tracked {
		if s.State != Down {
			a.log.Debug().Int("finger", s.FingerID).Str("state", s.State.String()).
				Msg("sample for untracked finger, treating as press")
		}
		if s.State == Up {
			return
		}
		a.fingers[s.FingerID] = &finger{
			seen: true,
			point: TouchPoint{
				ID:            s.FingerID,
				Position:      pos,
				StartPosition: pos,
				Raw:           raw,
				RawStart:      raw,
				State:         Pressed,
				Velocity:      vel,
				Started:       s.Timestamp,
			},
		}
		return
	}

	f.seen = true
	moved := raw != f.point.Raw
	f.point.Position = pos
	f.point.Raw = raw
	f.point.Velocity = vel

	switch s.State {
	case Up:
		f.point.State = Released
	case Down, Move:
		if moved {
			f.point.State = Moved
		} else {
			f.point.State = Stationary
		}
	}
}
