package wm

import (
	"math"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/types"
)

// slot is one laid-out deck position
type slot struct {
	Group  cards.GroupID
	Window cards.WindowID
	Bounds types.Rect
}

// cardRect returns the rect of the deck card offset positions away from
// the centered active card
func (m *Manager) cardRect(offset int) types.Rect {
	card := m.screen.Scale(m.settings.CardScale)
	step := card.Width + m.settings.CardSpacing
	return card.Translate(float64(offset)*step, 0)
}

// deckSlots lays out one slot per group, the active group centered
func (m *Manager) deckSlots() []slot {
	order := m.arena.Order()
	active := m.arena.ActiveIndex()
	slots := make([]slot, 0, len(order))
	for i, gid := range order {
		g, _ := m.arena.Group(gid)
		slots = append(slots, slot{
			Group:  gid,
			Window: g.Front(),
			Bounds: m.cardRect(i - active),
		})
	}
	return slots
}

// groupSlots lays out the tabs of the active group side by side with the
// other groups continuing on either side
func (m *Manager) groupSlots() []slot {
	var slots []slot
	center := 0
	for _, gid := range m.arena.Order() {
		g, _ := m.arena.Group(gid)
		if gid != m.arena.Active() {
			slots = append(slots, slot{Group: gid, Window: g.Front()})
			continue
		}
		center = len(slots) + g.Active
		for _, w := range g.Windows {
			slots = append(slots, slot{Group: gid, Window: w})
		}
	}
	for i := range slots {
		slots[i].Bounds = m.cardRect(i - center)
	}
	return slots
}

// visibleSlots returns the slots for the current state
func (m *Manager) visibleSlots() []slot {
	if m.state == Group {
		return m.groupSlots()
	}
	return m.deckSlots()
}

// layout writes card geometry for every placed window. Tabs behind the
// front of a group share its slot. The maximized card fills the screen.
func (m *Manager) layout() {
	slots := m.visibleSlots()
	if m.drag != nil {
		slots = m.reorderSlots()
	}
	for _, s := range slots {
		g, _ := m.arena.Group(s.Group)
		if m.state == Group && s.Group == m.arena.Active() {
			m.setGeometry(s.Window, s.Bounds)
			continue
		}
		for _, wid := range g.Windows {
			m.setGeometry(wid, s.Bounds)
		}
	}

	active := m.arena.ActiveWindow()
	for _, wid := range m.arena.Flattened() {
		if w, ok := m.arena.Window(wid); ok {
			w.IsMaximized = m.Maximized() && wid == active
		}
	}
	if m.Maximized() {
		m.setGeometry(active, m.screen)
	}
	for _, f := range m.modals {
		m.setGeometry(f.child, m.screen)
	}
	if m.drag != nil {
		card := m.screen.Scale(m.settings.CardScale)
		c := card.Center()
		for _, wid := range m.dragWindows() {
			m.setGeometry(wid, card.Translate(m.drag.pos.X-c.X, m.drag.pos.Y-c.Y))
		}
	}
	if m.placement != nil {
		m.setGeometry(m.placement.window, m.placement.anim.At(m.now))
	}
}

func (m *Manager) setGeometry(id cards.WindowID, r types.Rect) {
	if w, ok := m.arena.Window(id); ok {
		w.Geometry = r
	}
}

// hitTest returns the window whose slot contains the point
func (m *Manager) hitTest(p types.Point) (cards.WindowID, bool) {
	for _, s := range m.visibleSlots() {
		if s.Bounds.Contains(p) {
			return s.Window, true
		}
	}
	return 0, false
}

// closestSlot returns the index of the slot whose center is nearest the
// point, or -1 for no slots
func closestSlot(p types.Point, slots []slot) int {
	closest := -1
	minDist := math.MaxFloat64

	for i, s := range slots {
		c := s.Bounds.Center()
		dx := p.X - c.X
		dy := p.Y - c.Y
		dist := math.Sqrt(dx*dx + dy*dy)

		if dist < minDist {
			minDist = dist
			closest = i
		}
	}

	return closest
}
