package wm

import (
	"fmt"
	"time"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/rendering"
)

type focusRequest struct {
	window cards.WindowID
	since  time.Time
}

// RequestFocus asks for a card to take key and touch focus. Requests made
// while a card is launching are held until it is shown.
func (m *Manager) RequestFocus(id cards.WindowID) error {
	if _, ok := m.arena.Window(id); !ok {
		return fmt.Errorf("%w: %d", cards.ErrUnknownWindow, id)
	}
	m.Handle(Event{Kind: EvFocusRequest, Window: id, Time: m.now})
	return nil
}

// AcknowledgeFocus confirms a focus change
func (m *Manager) AcknowledgeFocus(id cards.WindowID) error {
	if _, ok := m.arena.Window(id); !ok {
		return fmt.Errorf("%w: %d", cards.ErrUnknownWindow, id)
	}
	m.Handle(Event{Kind: EvFocusAck, Window: id, Time: m.now})
	return nil
}

func beginFocus(m *Manager, ev Event) {
	m.focus = focusRequest{window: ev.Window, since: m.eventTime(ev)}
	if w, _ := m.arena.Window(ev.Window); w.Group != 0 {
		_ = m.arena.Activate(ev.Window)
	}
	m.setFocused(ev.Window)
}

func endFocus(m *Manager, _ Event) {
	m.focus = focusRequest{}
}

func deferFocus(m *Manager, ev Event) {
	m.deferredFocus = ev.Window
}

func acksFocus(m *Manager, ev Event) bool {
	return ev.Window == m.focus.window
}

func focusTimedOut(m *Manager, ev Event) bool {
	timeout := time.Duration(m.settings.FocusTimeoutMs) * time.Millisecond
	return m.eventTime(ev).Sub(m.focus.since) >= timeout
}

func focusTimeout(m *Manager, _ Event) {
	m.log.Warn().
		Uint32("window", uint32(m.focus.window)).
		Msg("focus not acknowledged, giving up")
}

// returnToOrigin resolves a transient state back to where it started
func returnToOrigin(m *Manager, _ Event) State {
	if m.origin == Maximize && m.arena.ActiveWindow() == 0 {
		return Minimize
	}
	return m.origin
}

// setFocused records and announces the focused window
func (m *Manager) setFocused(id cards.WindowID) {
	if id == 0 || id == m.focused {
		return
	}
	m.focused = id
	m.emit(intent.New(intent.FocusChanged).WithWindow(uint32(id)))
}

// shown returns the window on top: the newest modal child or the active card
func (m *Manager) shown() cards.WindowID {
	if n := len(m.modals); n > 0 {
		return m.modals[n-1].child
	}
	return m.arena.ActiveWindow()
}

func focusActive(m *Manager, _ Event) {
	m.setFocused(m.shown())
}

func orientFocused(m *Manager, ev Event) {
	if w, ok := m.arena.Window(m.shown()); ok {
		w.Orientation = ev.Orientation
	}
}

func closeOverlays(m *Manager, _ Event) {
	dash := intent.New(intent.CloseDashboard)
	dash.Force = true
	m.emit(dash, intent.New(intent.HideDock), intent.New(intent.HideLauncher))
}

// grantDirect requests the card layer for the shown window. A different
// previous holder is handed off by the arbiter.
func grantDirect(m *Manager, _ Event) {
	w := m.shown()
	if w == 0 {
		return
	}
	m.direct = w
	if err := m.arbiter.Request(rendering.LayerCard, w, true, false); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("direct rendering request")
	}
}

func revokeDirect(m *Manager, _ Event) {
	if m.direct != 0 {
		m.revoke(m.direct)
	}
}

func (m *Manager) revoke(w cards.WindowID) {
	m.direct = 0
	if err := m.arbiter.Request(rendering.LayerCard, w, false, false); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("direct rendering revoke")
	}
}
