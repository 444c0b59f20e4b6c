package rendering

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/cards"
)

var (
	ErrLayerOutOfRange      = errors.New("direct rendering layer out of range")
	ErrTransitionInProgress = errors.New("scene transition in progress")
	ErrNoWindow             = errors.New("direct rendering request without window")
)

// Logical compositing layers in priority order
const (
	LayerCard = iota
	LayerDock
	LayerSystem
)

// Notifier is told whenever a window's exclusive rendering flag changes
type Notifier func(window cards.WindowID, enabled bool)

// TransitionGate reports whether a scene transition is running
type TransitionGate interface {
	SceneTransitionActive() bool
}

// Grant is the per-layer record
type Grant struct {
	Layer     int            `json:"layer"`
	Requested cards.WindowID `json:"requested,omitempty"`
	Granted   bool           `json:"granted"`
}

type request struct {
	layer  int
	window cards.WindowID
	enable bool
	force  bool
}

type owner struct {
	layer  int
	window cards.WindowID
}

// Arbiter grants exclusive direct-to-display rendering to at most one
// window. Each layer holds one outstanding request; the first layer with
// a request wins.
type Arbiter struct {
	slots       []cards.WindowID
	current     owner
	notify      Notifier
	gate        TransitionGate
	deferred    []request
	transitions int
	log         zerolog.Logger
}

// NewArbiter creates an arbiter with the given number of layers
func NewArbiter(layers int, notify Notifier, log zerolog.Logger) *Arbiter {
	if notify == nil {
		notify = func(cards.WindowID, bool) {}
	}
	return &Arbiter{
		slots:   make([]cards.WindowID, layers),
		current: owner{layer: -1},
		notify:  notify,
		log:     log,
	}
}

// SetGate installs the scene transition gate
func (a *Arbiter) SetGate(g TransitionGate) {
	a.gate = g
}

// Request records or clears a direct rendering request and re-resolves
// the owner. Disabling ignores layer and clears every layer that points
// at window. Requests made during a scene transition are held and
// replayed by Resume.
func (a *Arbiter) Request(layer int, window cards.WindowID, enable, force bool) error {
	if layer < 0 || layer >= len(a.slots) {
		a.log.Warn().Int("layer", layer).Int("layers", len(a.slots)).Msg("direct rendering layer out of range")
		return fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer)
	}
	if window == 0 {
		return ErrNoWindow
	}

	if a.gate != nil && a.gate.SceneTransitionActive() {
		a.deferred = append(a.deferred, request{layer: layer, window: window, enable: enable, force: force})
		a.log.Debug().Uint32("window", uint32(window)).Bool("enable", enable).
			Msg("direct rendering request deferred until scene transition ends")
		return ErrTransitionInProgress
	}

	a.apply(request{layer: layer, window: window, enable: enable, force: force})
	return nil
}

// Resume replays requests deferred during a scene transition and returns
// how many were applied
func (a *Arbiter) Resume() int {
	if a.gate != nil && a.gate.SceneTransitionActive() {
		return 0
	}
	pending := a.deferred
	a.deferred = nil
	for _, r := range pending {
		a.apply(r)
	}
	return len(pending)
}

// Pending returns the number of deferred requests
func (a *Arbiter) Pending() int {
	return len(a.deferred)
}

func (a *Arbiter) apply(r request) {
	if r.enable {
		a.slots[r.layer] = r.window
	} else {
		for i, w := range a.slots {
			if w == r.window {
				a.slots[i] = 0
			}
		}
	}
	a.resolve(r.force)
}

// resolve hands the grant to the highest priority request. The old owner
// is always revoked before the new one is granted.
func (a *Arbiter) resolve(force bool) {
	next := owner{layer: -1}
	for i, w := range a.slots {
		if w != 0 {
			next = owner{layer: i, window: w}
			break
		}
	}

	if next == a.current && !force {
		return
	}
	if next.window == 0 && a.current.window == 0 {
		return
	}

	if prev := a.current; prev.window != 0 {
		a.current = owner{layer: -1}
		a.log.Debug().Uint32("window", uint32(prev.window)).Int("layer", prev.layer).Msg("direct rendering revoked")
		a.notify(prev.window, false)
	}
	if next.window != 0 {
		a.current = next
		a.log.Debug().Uint32("window", uint32(next.window)).Int("layer", next.layer).Msg("direct rendering granted")
		a.notify(next.window, true)
	}
	a.transitions++
}

// Current returns the window holding the grant and its layer
func (a *Arbiter) Current() (cards.WindowID, int, bool) {
	if a.current.window == 0 {
		return 0, -1, false
	}
	return a.current.window, a.current.layer, true
}

// Grants returns the per-layer records
func (a *Arbiter) Grants() []Grant {
	out := make([]Grant, len(a.slots))
	for i, w := range a.slots {
		out[i] = Grant{
			Layer:     i,
			Requested: w,
			Granted:   a.current.window != 0 && a.current.layer == i,
		}
	}
	return out
}

// Transitions returns how many times the owner changed
func (a *Arbiter) Transitions() int {
	return a.transitions
}

// Layers returns the number of layers
func (a *Arbiter) Layers() int {
	return len(a.slots)
}
