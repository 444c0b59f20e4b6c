package wm

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/rendering"
	"github.com/yourusername/cardshell/internal/types"
)

var (
	ErrTransitionPending    = errors.New("scene transition already pending")
	ErrNoPreparedTransition = errors.New("no prepared scene transition")
	ErrNoActiveCard         = errors.New("no active card")
	ErrNoModal              = errors.New("no modal card")
)

// Manager is the card window manager state machine. It owns the deck
// layout state and interprets every routed intent and lifecycle event
// through its transition table. Not safe for concurrent use.
type Manager struct {
	settings *config.Settings
	arena    *cards.Arena
	arbiter  *rendering.Arbiter
	out      *intent.Queue
	log      zerolog.Logger
	table    *table

	state  State
	origin State // where a transient state returns to
	screen types.Rect
	now    time.Time

	scene         *scene
	placement     *placement
	pending       cards.WindowID // card being launched
	focused       cards.WindowID
	focus         focusRequest
	deferredFocus cards.WindowID
	direct        cards.WindowID // window holding the card layer request
	press         *press
	drag          *drag
	modals        []modalFrame
	gesture       float64

	inbox       []Event
	dispatching bool
	ticking     bool
}

// NewManager creates a manager in the Minimize state and installs itself
// as the arbiter's transition gate
func NewManager(s *config.Settings, arena *cards.Arena, arbiter *rendering.Arbiter, out *intent.Queue, log zerolog.Logger) *Manager {
	m := &Manager{
		settings: s,
		arena:    arena,
		arbiter:  arbiter,
		out:      out,
		log:      log,
		table:    newTable(),
		state:    Minimize,
		origin:   Minimize,
		screen:   types.Rect{Width: s.ScreenWidth, Height: s.ScreenHeight},
	}
	arbiter.SetGate(m)
	return m
}

// State returns the active state
func (m *Manager) State() State {
	return m.state
}

// Origin returns the state a transient state will return to
func (m *Manager) Origin() State {
	return m.origin
}

// Arena returns the window arena
func (m *Manager) Arena() *cards.Arena {
	return m.arena
}

// Focused returns the focused window, or 0
func (m *Manager) Focused() cards.WindowID {
	return m.focused
}

// Screen returns the canonical screen bounds used for layout
func (m *Manager) Screen() types.Rect {
	return m.screen
}

// SetScreen updates the canonical screen bounds after a rotation
func (m *Manager) SetScreen(r types.Rect) {
	m.screen = r
	m.layout()
}

// Maximized reports whether a card is shown full screen, including the
// fluid gestures that started from a maximized card
func (m *Manager) Maximized() bool {
	switch m.state {
	case Maximize, SwitchGesture, MinimizeGesture:
		return true
	case Focus:
		return m.origin == Maximize
	default:
		return false
	}
}

// ModalActive reports whether a modal child card is shown
func (m *Manager) ModalActive() bool {
	return len(m.modals) > 0
}

// Handle runs one event through the transition table. Events raised while
// a transition is firing are queued and run after it. It reports whether
// a rule matched.
func (m *Manager) Handle(ev Event) bool {
	if m.dispatching {
		m.inbox = append(m.inbox, ev)
		return true
	}
	m.dispatching = true
	handled := m.dispatch(ev)
	for len(m.inbox) > 0 {
		next := m.inbox[0]
		m.inbox = m.inbox[1:]
		m.dispatch(next)
	}
	m.dispatching = false
	return handled
}

// HandleIntent converts a routed intent and handles it
func (m *Manager) HandleIntent(in intent.Intent) bool {
	ev, ok := FromIntent(in)
	if !ok {
		return false
	}
	return m.Handle(ev)
}

func (m *Manager) dispatch(ev Event) bool {
	if ev.Time.After(m.now) {
		m.now = ev.Time
	}
	for _, r := range m.table.lookup(m.state, ev.Kind) {
		if r.Guard != nil && !r.Guard(m, ev) {
			continue
		}
		m.fire(r, ev)
		return true
	}
	if ev.Kind != EvTick {
		m.log.Debug().
			Str("state", m.state.String()).
			Str("event", ev.Kind.String()).
			Msg("event ignored")
	}
	return false
}

// fire runs exit effects of the old state, the rule effects, then entry
// effects of the new state
func (m *Manager) fire(r rule, ev Event) {
	next := r.Next
	if r.Resolve != nil {
		next = r.Resolve(m, ev)
	}

	if next == stay || next == m.state {
		for _, e := range r.Effects {
			e(m, ev)
		}
		m.layout()
		return
	}

	prev := m.state
	for _, e := range m.table.onExit[prev] {
		e(m, ev)
	}
	for _, e := range r.Effects {
		e(m, ev)
	}
	if next.transient() && !prev.transient() {
		m.origin = prev
	}
	m.state = next
	m.log.Debug().
		Str("from", prev.String()).
		Str("to", next.String()).
		Str("event", ev.Kind.String()).
		Msg("state transition")
	for _, e := range m.table.onEnter[next] {
		e(m, ev)
	}
	m.layout()

	in := intent.New(intent.StateChanged)
	in.Name = next.String()
	m.emit(in)
}

// transitionTo moves to next outside the table, used for recovery and
// scene completion
func (m *Manager) transitionTo(next State) {
	m.fire(rule{Next: next}, Event{Time: m.now})
}

func (m *Manager) emit(in ...intent.Intent) {
	m.out.Push(in...)
}

// eventTime returns the event time, or the last known time
func (m *Manager) eventTime(ev Event) time.Time {
	if ev.Time.IsZero() {
		return m.now
	}
	return ev.Time
}

// Tick advances animations and timers. It reports true once nothing is
// animating. Re-entrant calls are ignored.
func (m *Manager) Tick(now time.Time) bool {
	if m.ticking {
		return false
	}
	m.ticking = true
	defer func() { m.ticking = false }()

	if now.After(m.now) {
		m.now = now
	}
	if p := m.placement; p != nil && p.anim.Done(now) {
		m.placement = nil
		m.Handle(Event{Kind: EvPlacementDone, Time: now, Window: p.window})
	}
	if s := m.scene; s != nil && s.running && s.anim.Done(now) {
		m.finishScene()
	}
	m.Handle(Event{Kind: EvTick, Time: now})
	m.layout()

	return m.placement == nil && (m.scene == nil || !m.scene.running)
}

// AddCard registers a new card for appID and starts its launch
func (m *Manager) AddCard(appID string) cards.WindowID {
	w := m.arena.AddWindow(appID)
	w.Orientation = m.orientation()
	m.Handle(Event{Kind: EvCardAdded, Window: w.ID, Time: m.now})
	return w.ID
}

// ContentReady marks a card's content as loaded
func (m *Manager) ContentReady(id cards.WindowID) error {
	if _, ok := m.arena.Window(id); !ok {
		return fmt.Errorf("%w: %d", cards.ErrUnknownWindow, id)
	}
	m.Handle(Event{Kind: EvContentReady, Window: id, Time: m.now})
	return nil
}

// CloseCard removes a card
func (m *Manager) CloseCard(id cards.WindowID) error {
	if _, ok := m.arena.Window(id); !ok {
		return fmt.Errorf("%w: %d", cards.ErrUnknownWindow, id)
	}
	m.Handle(Event{Kind: EvCardClosed, Window: id, Time: m.now})
	return nil
}

// orientation returns the orientation of the focused card, or Up
func (m *Manager) orientation() types.Orientation {
	if w, ok := m.arena.Window(m.focused); ok {
		return w.Orientation
	}
	return types.OrientationUp
}
