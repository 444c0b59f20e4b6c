package cards

import (
	"errors"
	"fmt"

	"github.com/yourusername/cardshell/internal/types"
)

var (
	ErrUnknownWindow = errors.New("unknown window")
	ErrUnknownGroup  = errors.New("unknown group")
	ErrNotPlaced     = errors.New("window not placed in the deck")
)

// WindowID identifies a card window within an arena
type WindowID uint32

// GroupID identifies a card group within an arena. Zero means none.
type GroupID uint32

// CardWindow is one application's card
type CardWindow struct {
	ID          WindowID          `json:"id"`
	AppID       string            `json:"appId"`
	Geometry    types.Rect        `json:"geometry"`
	Orientation types.Orientation `json:"orientation"`
	IsMaximized bool              `json:"isMaximized"`
	Group       GroupID           `json:"groupId,omitempty"`
	Parent      WindowID          `json:"parent,omitempty"` // modal parent
	Ready       bool              `json:"ready"`
}

// CardGroup is an ordered tab stack of windows
type CardGroup struct {
	ID      GroupID    `json:"id"`
	Windows []WindowID `json:"windows"`
	Active  int        `json:"active"` // index of the front tab
}

// Front returns the window shown on top of the group
func (g *CardGroup) Front() WindowID {
	if len(g.Windows) == 0 {
		return 0
	}
	if g.Active < 0 || g.Active >= len(g.Windows) {
		return g.Windows[0]
	}
	return g.Windows[g.Active]
}

func (g *CardGroup) indexOf(w WindowID) int {
	for i, id := range g.Windows {
		if id == w {
			return i
		}
	}
	return -1
}

// Arena owns every window and group. Windows and groups refer to each
// other by id only. Not safe for concurrent use.
type Arena struct {
	windows    map[WindowID]*CardWindow
	groups     map[GroupID]*CardGroup
	order      []GroupID // deck order, left to right
	active     GroupID
	nextWindow WindowID
	nextGroup  GroupID
}

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{
		windows: make(map[WindowID]*CardWindow),
		groups:  make(map[GroupID]*CardGroup),
	}
}

// AddWindow registers a window that is not yet placed in the deck
func (a *Arena) AddWindow(appID string) *CardWindow {
	a.nextWindow++
	w := &CardWindow{ID: a.nextWindow, AppID: appID}
	a.windows[w.ID] = w
	return w
}

// Window returns a window by id
func (a *Arena) Window(id WindowID) (*CardWindow, bool) {
	w, ok := a.windows[id]
	return w, ok
}

// Group returns a group by id
func (a *Arena) Group(id GroupID) (*CardGroup, bool) {
	g, ok := a.groups[id]
	return g, ok
}

// Len returns the number of windows, placed or not
func (a *Arena) Len() int {
	return len(a.windows)
}

// Place puts a pending window into a new group directly after the active
// group and makes it active
func (a *Arena) Place(id WindowID) (GroupID, error) {
	w, ok := a.windows[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	if w.Group != 0 {
		return w.Group, nil
	}

	g := a.newGroup(w.ID)
	at := a.indexOf(a.active) + 1
	a.insert(g.ID, at)
	a.active = g.ID
	return g.ID, nil
}

func (a *Arena) newGroup(first WindowID) *CardGroup {
	a.nextGroup++
	g := &CardGroup{ID: a.nextGroup, Windows: []WindowID{first}}
	a.groups[g.ID] = g
	a.windows[first].Group = g.ID
	return g
}

// Remove deletes a window. Removing the last window of a group destroys
// the group; the active group moves to a neighbour.
func (a *Arena) Remove(id WindowID) error {
	w, ok := a.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	if w.Group != 0 {
		a.detach(w)
	}
	delete(a.windows, id)
	for _, other := range a.windows {
		if other.Parent == id {
			other.Parent = 0
		}
	}
	return nil
}

// detach removes w from its group, destroying the group if emptied
func (a *Arena) detach(w *CardWindow) {
	g := a.groups[w.Group]
	w.Group = 0
	if g == nil {
		return
	}

	i := g.indexOf(w.ID)
	if i < 0 {
		return
	}
	g.Windows = append(g.Windows[:i], g.Windows[i+1:]...)
	if len(g.Windows) > 0 {
		if g.Active >= len(g.Windows) {
			g.Active = len(g.Windows) - 1
		} else if i < g.Active {
			g.Active--
		}
		return
	}

	pos := a.indexOf(g.ID)
	a.order = append(a.order[:pos], a.order[pos+1:]...)
	delete(a.groups, g.ID)
	if a.active == g.ID {
		a.active = 0
		if len(a.order) > 0 {
			a.active = a.order[min(pos, len(a.order)-1)]
		}
	}
}

// Join moves a placed window into the target group as its front tab
func (a *Arena) Join(id WindowID, target GroupID) error {
	w, ok := a.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	g, ok := a.groups[target]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, target)
	}
	if w.Group == target {
		return nil
	}
	if w.Group == 0 {
		return fmt.Errorf("%w: %d", ErrNotPlaced, id)
	}

	wasActive := a.active == w.Group
	a.detach(w)
	g.Windows = append(g.Windows, w.ID)
	g.Active = len(g.Windows) - 1
	w.Group = g.ID
	if wasActive || a.active == 0 {
		a.active = g.ID
	}
	return nil
}

// Leave moves a window out of its group into a new group placed directly
// after the old one. A window alone in its group stays where it is.
func (a *Arena) Leave(id WindowID) (GroupID, error) {
	w, ok := a.windows[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	if w.Group == 0 {
		return 0, fmt.Errorf("%w: %d", ErrNotPlaced, id)
	}
	old := a.groups[w.Group]
	if len(old.Windows) == 1 {
		return old.ID, nil
	}

	at := a.indexOf(old.ID) + 1
	a.detach(w)
	g := a.newGroup(w.ID)
	a.insert(g.ID, at)
	a.active = g.ID
	return g.ID, nil
}

// IsGrouped reports whether the window shares its group with others
func (a *Arena) IsGrouped(id WindowID) bool {
	w, ok := a.windows[id]
	if !ok || w.Group == 0 {
		return false
	}
	return len(a.groups[w.Group].Windows) > 1
}

// Active returns the active group, or 0 for an empty deck
func (a *Arena) Active() GroupID {
	return a.active
}

// ActiveWindow returns the front window of the active group
func (a *Arena) ActiveWindow() WindowID {
	g, ok := a.groups[a.active]
	if !ok {
		return 0
	}
	return g.Front()
}

// ActiveIndex returns the deck index of the active group, or -1
func (a *Arena) ActiveIndex() int {
	return a.indexOf(a.active)
}

// Activate makes the window the front tab of the active group
func (a *Arena) Activate(id WindowID) error {
	w, ok := a.windows[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	if w.Group == 0 {
		return fmt.Errorf("%w: %d", ErrNotPlaced, id)
	}
	g := a.groups[w.Group]
	g.Active = g.indexOf(id)
	a.active = g.ID
	return nil
}

// Step moves the active group by delta positions in the deck without
// wrapping. It reports whether the active group changed.
func (a *Arena) Step(delta int) bool {
	if len(a.order) == 0 || delta == 0 {
		return false
	}
	idx := a.indexOf(a.active)
	next := max(0, min(len(a.order)-1, idx+delta))
	if next == idx {
		return false
	}
	a.active = a.order[next]
	return true
}

// CycleTab moves the front tab of the active group forward or backward,
// wrapping around. It returns the new front window.
func (a *Arena) CycleTab(forward bool) WindowID {
	g, ok := a.groups[a.active]
	if !ok || len(g.Windows) == 0 {
		return 0
	}
	n := len(g.Windows)
	if forward {
		g.Active = (g.Active + 1) % n
	} else {
		g.Active = (g.Active - 1 + n) % n
	}
	return g.Front()
}

// MoveGroup moves a group to deck index to, clamped to the deck
func (a *Arena) MoveGroup(id GroupID, to int) error {
	from := a.indexOf(id)
	if from < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, id)
	}
	a.order = append(a.order[:from], a.order[from+1:]...)
	a.insert(id, to)
	return nil
}

// Order returns the deck order of groups
func (a *Arena) Order() []GroupID {
	out := make([]GroupID, len(a.order))
	copy(out, a.order)
	return out
}

// Flattened returns every placed window in deck then tab order
func (a *Arena) Flattened() []WindowID {
	var out []WindowID
	for _, gid := range a.order {
		out = append(out, a.groups[gid].Windows...)
	}
	return out
}

func (a *Arena) indexOf(id GroupID) int {
	for i, gid := range a.order {
		if gid == id {
			return i
		}
	}
	return -1
}

func (a *Arena) insert(id GroupID, at int) {
	at = max(0, min(len(a.order), at))
	a.order = append(a.order, 0)
	copy(a.order[at+1:], a.order[at:])
	a.order[at] = id
}
