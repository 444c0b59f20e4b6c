package wm

import (
	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
)

// modalFrame is one modal child shown over its parent card
type modalFrame struct {
	child  cards.WindowID
	parent cards.WindowID
	reason string
}

// LaunchModal shows a modal child card over the maximized active card
func (m *Manager) LaunchModal(appID string) (cards.WindowID, error) {
	parent, ok := m.arena.Window(m.shown())
	if m.state != Maximize || !ok {
		return 0, ErrNoActiveCard
	}
	child := m.arena.AddWindow(appID)
	child.Parent = parent.ID
	child.Ready = true
	child.Orientation = parent.Orientation
	m.Handle(Event{Kind: EvModalLaunched, Window: child.ID, Time: m.now})
	return child.ID, nil
}

// DismissModal closes the newest modal child and hands control back to
// its parent, restoring the parent's focus and orientation before
// returning
func (m *Manager) DismissModal(reason string) error {
	if len(m.modals) == 0 {
		return ErrNoModal
	}
	m.Handle(Event{Kind: EvModalDismissed, Reason: reason, Time: m.now})
	return nil
}

func (m *Manager) modalIndex(id cards.WindowID) int {
	for i, f := range m.modals {
		if f.child == id {
			return i
		}
	}
	return -1
}

func hasModal(m *Manager, _ Event) bool { return len(m.modals) > 0 }

func modalOverActive(m *Manager, ev Event) bool {
	w, ok := m.arena.Window(ev.Window)
	return ok && w.Parent != 0 && w.Parent == m.shown()
}

func pushModal(m *Manager, ev Event) {
	w, _ := m.arena.Window(ev.Window)
	m.modals = append(m.modals, modalFrame{child: w.ID, parent: w.Parent})
	grantDirect(m, ev)
	m.setFocused(w.ID)
}

func rejectModal(m *Manager, ev Event) {
	m.log.Warn().
		Uint32("window", uint32(ev.Window)).
		Str("state", m.state.String()).
		Msg("modal card rejected, no maximized parent")
	_ = m.arena.Remove(ev.Window)
}

// afterDismiss returns to the parent card, or the deck if it is gone
func afterDismiss(m *Manager, _ Event) State {
	top := m.modals[len(m.modals)-1]
	if p, ok := m.arena.Window(top.parent); ok && (p.Group != 0 || p.Parent != 0) {
		return Maximize
	}
	return Minimize
}

func popModal(m *Manager, ev Event) {
	frame := m.modals[len(m.modals)-1]
	frame.reason = ev.Reason
	m.modals = m.modals[:len(m.modals)-1]

	if m.direct == frame.child {
		m.revoke(frame.child)
	}
	if m.focused == frame.child {
		m.focused = 0
	}
	_ = m.arena.Remove(frame.child)
	m.restoreParent(frame)
}

// restoreParent re-applies the parent's focus and orientation
func (m *Manager) restoreParent(frame modalFrame) {
	parent, ok := m.arena.Window(frame.parent)
	if !ok {
		m.log.Info().
			Uint32("child", uint32(frame.child)).
			Str("reason", frame.reason).
			Msg("modal parent gone")
		return
	}
	if parent.Group != 0 {
		_ = m.arena.Activate(parent.ID)
	}
	if m.state == Maximize && m.shown() == parent.ID {
		grantDirect(m, Event{})
	}
	m.setFocused(parent.ID)

	in := intent.New(intent.OrientationChanged).WithWindow(uint32(parent.ID))
	in.Orientation = parent.Orientation
	m.emit(in)
	m.log.Debug().
		Uint32("child", uint32(frame.child)).
		Uint32("parent", uint32(parent.ID)).
		Str("reason", frame.reason).
		Msg("modal dismissed")
}
