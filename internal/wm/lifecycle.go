package wm

import (
	"time"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
)

// placement animates a new card into its deck slot
type placement struct {
	window cards.WindowID
	anim   Animation
}

func placeCard(m *Manager, ev Event) {
	if _, err := m.arena.Place(ev.Window); err != nil {
		m.log.Warn().Err(err).Msg("place card")
		return
	}
	m.emit(intent.New(intent.CardActivated).WithWindow(uint32(ev.Window)))
}

// placeBehind adds the card to the deck without disturbing the active card
func placeBehind(m *Manager, ev Event) {
	prev := m.arena.ActiveWindow()
	if _, err := m.arena.Place(ev.Window); err != nil {
		m.log.Warn().Err(err).Msg("place card")
		return
	}
	if prev != 0 {
		_ = m.arena.Activate(prev)
	}
	m.log.Debug().
		Uint32("window", uint32(ev.Window)).
		Str("state", m.state.String()).
		Msg("card placed without launch transition")
}

func prepareLaunch(m *Manager, ev Event) {
	m.pending = ev.Window
	m.beginScene(Maximize)
}

func startPlacement(m *Manager, ev Event) {
	to := m.cardRect(0)
	m.placement = &placement{
		window: ev.Window,
		anim: Animation{
			From:     to.Translate(0, m.screen.Height),
			To:       to,
			Start:    m.eventTime(ev),
			Duration: time.Duration(m.settings.PlacementMs) * time.Millisecond,
		},
	}
}

func isPending(m *Manager, ev Event) bool {
	return ev.Window != 0 && ev.Window == m.pending
}

func pendingReady(m *Manager, _ Event) bool {
	w, ok := m.arena.Window(m.pending)
	return ok && w.Ready
}

func markReady(m *Manager, ev Event) {
	if w, ok := m.arena.Window(ev.Window); ok {
		w.Ready = true
	}
}

func runLaunch(m *Manager, _ Event) {
	if m.scene == nil || m.scene.running {
		return
	}
	m.runScene(launchScene, false)
}

func knownWindow(m *Manager, ev Event) bool {
	_, ok := m.arena.Window(ev.Window)
	return ok
}

// afterClose picks the state after ev.Window is removed. It runs before
// the removal.
func afterClose(m *Manager, ev Event) State {
	w, ok := m.arena.Window(ev.Window)
	if !ok || w.Parent != 0 {
		return m.state
	}

	switch m.state {
	case Maximize, SwitchGesture, MinimizeGesture:
		if ev.Window == m.arena.ActiveWindow() {
			return Minimize
		}
	case Preparing, Loading:
		if ev.Window == m.pending && m.scene != nil {
			origin := m.scene.origin
			if origin == Maximize && len(m.arena.Flattened()) <= 1 {
				return Minimize
			}
			return origin
		}
	case Group:
		g, ok := m.arena.Group(m.arena.Active())
		if ok && w.Group == g.ID && len(g.Windows) <= 2 {
			return Minimize
		}
	case Reorder:
		if m.drag != nil && w.Group == m.drag.group {
			return Minimize
		}
	case Focus:
		if ev.Window == m.focus.window {
			if m.origin == Maximize && ev.Window == m.arena.ActiveWindow() {
				return Minimize
			}
			return m.origin
		}
	}
	return m.state
}

func closeCard(m *Manager, ev Event) {
	id := ev.Window
	if m.scene != nil && m.pending == id {
		m.abortScene("card closed")
	}
	if m.placement != nil && m.placement.window == id {
		m.placement = nil
	}
	if i := m.modalIndex(id); i >= 0 {
		frame := m.modals[i]
		top := i == len(m.modals)-1
		m.modals = append(m.modals[:i], m.modals[i+1:]...)
		if top {
			m.restoreParent(frame)
		}
	}
	if m.direct == id {
		m.revoke(id)
	}
	if m.drag != nil {
		if w, ok := m.arena.Window(id); ok && w.Group == m.drag.group {
			m.drag = nil
		}
	}
	if m.focused == id {
		m.focused = 0
	}
	if m.deferredFocus == id {
		m.deferredFocus = 0
	}
	if err := m.arena.Remove(id); err != nil {
		m.log.Warn().Err(err).Msg("close card")
	}
}
