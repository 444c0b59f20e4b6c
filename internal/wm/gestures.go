package wm

import (
	"math"

	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/types"
)

// Spread scale bounds deciding where a fluid spread gesture lands
const (
	spreadOpenScale  = 1.1
	spreadCloseScale = 0.9
)

func tapHit(m *Manager, ev Event) bool {
	_, ok := m.hitTest(ev.Pos)
	return ok
}

func activateTapped(m *Manager, ev Event) {
	w, _ := m.hitTest(ev.Pos)
	if err := m.arena.Activate(w); err != nil {
		m.log.Warn().Err(err).Msg("activate tapped card")
		return
	}
	m.emit(intent.New(intent.CardActivated).WithWindow(uint32(w)))
}

func stepDeck(m *Manager, ev Event) {
	if m.arena.Step(ev.Direction.Step()) {
		m.emit(intent.New(intent.CardActivated).WithWindow(uint32(m.arena.ActiveWindow())))
	}
}

func cycleTab(m *Manager, ev Event) {
	if ev.Direction != types.DirLeft && ev.Direction != types.DirRight {
		return
	}
	if w := m.arena.CycleTab(ev.Direction == types.DirRight); w != 0 {
		m.emit(intent.New(intent.CardActivated).WithWindow(uint32(w)))
	}
}

// afterGroupStep stays grouped only if the next active group has tabs.
// It runs before the step.
func afterGroupStep(m *Manager, ev Event) State {
	order := m.arena.Order()
	if len(order) == 0 {
		return Minimize
	}
	idx := max(0, min(len(order)-1, m.arena.ActiveIndex()+ev.Direction.Step()))
	if g, ok := m.arena.Group(order[idx]); ok && len(g.Windows) > 1 {
		return Group
	}
	return Minimize
}

func spreadsIntoGroup(m *Manager, ev Event) bool {
	return ev.Value > 1 && m.arena.IsGrouped(m.arena.ActiveWindow())
}

func pinchedClosed(_ *Manager, ev Event) bool {
	return ev.Value < 1
}

// switchMaximized replaces the maximized card with its neighbour and
// hands direct rendering to it
func switchMaximized(m *Manager, ev Event) {
	if m.ModalActive() {
		return
	}
	if !m.arena.Step(ev.Direction.Step()) {
		return
	}
	w := m.arena.ActiveWindow()
	m.emit(intent.New(intent.CardActivated).WithWindow(uint32(w)))
	grantDirect(m, ev)
	m.setFocused(w)
}

func recordGesture(m *Manager, ev Event) {
	m.gesture = ev.Value
}

// commitSwitch steps the deck once the fluid switch travelled far enough
func commitSwitch(m *Manager, ev Event) {
	m.gesture = ev.Value
	if math.Abs(ev.Value) < m.settings.SwitchCommitFraction*m.screen.Width {
		return
	}
	if m.arena.Step(ev.Direction.Step()) {
		m.emit(intent.New(intent.CardActivated).WithWindow(uint32(m.arena.ActiveWindow())))
	}
}

func minimizeOutcome(m *Manager, ev Event) State {
	m.gesture = ev.Value
	if ev.Value >= m.settings.MinimizeCommitFraction*m.screen.Height {
		return Minimize
	}
	return Maximize
}

func spreadOutcome(m *Manager, ev Event) State {
	m.gesture = ev.Value
	switch {
	case ev.Value > spreadOpenScale && m.arena.IsGrouped(m.arena.ActiveWindow()):
		return Group
	case ev.Value < spreadCloseScale:
		return Minimize
	default:
		return m.origin
	}
}
