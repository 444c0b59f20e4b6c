package wm

import (
	"math"
	"time"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/types"
)

// press is a pointer held down on the deck
type press struct {
	start  types.Point
	pos    types.Point
	at     time.Time
	moved  bool
	target cards.WindowID
}

// drag is an in-flight reorder of one group
type drag struct {
	group  cards.GroupID
	from   int // deck index at pickup
	slot   int // target deck index
	anchor int // active deck index at pickup, keeps the deck still
	pos    types.Point
	slots  []slot // deck layout at pickup
}

func beginPress(m *Manager, ev Event) {
	target, _ := m.hitTest(ev.Pos)
	m.press = &press{
		start:  ev.Pos,
		pos:    ev.Pos,
		at:     m.eventTime(ev),
		target: target,
	}
}

func trackPress(m *Manager, ev Event) {
	if m.press == nil {
		return
	}
	m.press.pos = ev.Pos
	if ev.Pos.Dist(m.press.start) > m.settings.DragSlop {
		m.press.moved = true
	}
}

func endPress(m *Manager, _ Event) {
	m.press = nil
}

// holdElapsed reports a press held still on a card for the reorder delay
func holdElapsed(m *Manager, ev Event) bool {
	p := m.press
	if p == nil || p.moved || p.target == 0 {
		return false
	}
	hold := time.Duration(m.settings.ReorderHoldMs) * time.Millisecond
	return m.eventTime(ev).Sub(p.at) >= hold
}

func beginDrag(m *Manager, _ Event) {
	p := m.press
	m.press = nil
	w, ok := m.arena.Window(p.target)
	if !ok || w.Group == 0 {
		return
	}

	slots := m.deckSlots()
	from := 0
	for i, s := range slots {
		if s.Group == w.Group {
			from = i
		}
	}
	m.drag = &drag{
		group:  w.Group,
		from:   from,
		slot:   from,
		anchor: m.arena.ActiveIndex(),
		pos:    p.pos,
		slots:  slots,
	}
	m.log.Debug().
		Uint32("group", uint32(w.Group)).
		Int("slot", from).
		Msg("reorder started")
}

func dragTo(m *Manager, ev Event) {
	if m.drag == nil {
		return
	}
	m.drag.pos = ev.Pos
	if i := closestSlot(ev.Pos, m.drag.slots); i >= 0 {
		m.drag.slot = i
	}
}

// joinTarget returns the group whose card center lies within the join
// radius of the drop point
func (m *Manager) joinTarget(d *drag) cards.GroupID {
	for _, s := range d.slots {
		if s.Group == d.group {
			continue
		}
		if d.pos.Dist(s.Bounds.Center()) <= m.settings.GroupJoinRadius {
			return s.Group
		}
	}
	return 0
}

func dropDrag(m *Manager, _ Event) {
	d := m.drag
	m.drag = nil
	if d == nil {
		return
	}

	if target := m.joinTarget(d); target != 0 {
		g, _ := m.arena.Group(d.group)
		windows := append([]cards.WindowID(nil), g.Windows...)
		for _, w := range windows {
			if err := m.arena.Join(w, target); err != nil {
				m.log.Warn().Err(err).Msg("join group")
			}
		}
		tg, _ := m.arena.Group(target)
		_ = m.arena.Activate(tg.Front())
		m.emit(intent.New(intent.GroupChanged).WithWindow(uint32(tg.Front())))
		return
	}

	if g, ok := m.arena.Group(d.group); ok && len(g.Windows) > 1 && offRow(d) {
		front := g.Front()
		if _, err := m.arena.Leave(front); err != nil {
			m.log.Warn().Err(err).Msg("leave group")
			return
		}
		m.emit(intent.New(intent.GroupChanged).WithWindow(uint32(front)))
		return
	}

	if d.slot != d.from {
		if err := m.arena.MoveGroup(d.group, d.slot); err != nil {
			m.log.Warn().Err(err).Msg("move group")
			return
		}
		m.emit(intent.New(intent.DeckReordered))
	}
}

// offRow reports a drop more than one card height above or below the
// deck row. Such a drop tears the front tab out of its group.
func offRow(d *drag) bool {
	if d.from >= len(d.slots) {
		return false
	}
	row := d.slots[d.from].Bounds
	return math.Abs(d.pos.Y-row.Center().Y) > row.Height
}

// exitReorder abandons any pickup or drag in flight
func exitReorder(m *Manager, _ Event) {
	if m.drag != nil {
		m.log.Debug().Uint32("group", uint32(m.drag.group)).Msg("reorder abandoned")
	}
	m.drag = nil
	m.press = nil
}

// dragWindows returns the windows carried by the drag
func (m *Manager) dragWindows() []cards.WindowID {
	g, ok := m.arena.Group(m.drag.group)
	if !ok {
		return nil
	}
	return g.Windows
}

// reorderSlots lays out the deck as if the dragged group already sat at
// its target slot
func (m *Manager) reorderSlots() []slot {
	order := m.arena.Order()
	for i, gid := range order {
		if gid == m.drag.group {
			order = append(order[:i], order[i+1:]...)
			break
		}
	}
	at := max(0, min(len(order), m.drag.slot))
	order = append(order[:at], append([]cards.GroupID{m.drag.group}, order[at:]...)...)

	slots := make([]slot, 0, len(order))
	for i, gid := range order {
		g, ok := m.arena.Group(gid)
		if !ok {
			continue
		}
		slots = append(slots, slot{
			Group:  gid,
			Window: g.Front(),
			Bounds: m.cardRect(i - m.drag.anchor),
		})
	}
	return slots
}
