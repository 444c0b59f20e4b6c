package intent

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/yourusername/cardshell/internal/types"
)

// Kind names a semantic action emitted to collaborators
type Kind int

const (
	None Kind = iota

	// Router outputs
	ToggleLauncher
	HideLauncher
	ShowDock
	HideDock
	MinimizeActiveCard
	MaximizeActiveCard
	SwitchCard
	ChangeCardWindow
	OpenDashboard
	CloseDashboard
	DismissNotification
	CloseAlert
	HideMenu
	ToggleUniversalSearch
	HideUniversalSearch
	EnterDockMode
	ExitDockMode
	SpreadOpen
	TapCard
	PointerPress
	PointerMove
	PointerRelease
	SwitchGesture
	MinimizeGesture
	SpreadGesture
	OrientationChanged

	// Manager outputs
	StateChanged
	FocusChanged
	DirectRendering
	ScenePrepare
	SceneRun
	SceneCancel
	SceneFinished
	CardActivated
	DeckReordered
	GroupChanged
)

var kindNames = map[Kind]string{
	None:                  "none",
	ToggleLauncher:        "toggle-launcher",
	HideLauncher:          "hide-launcher",
	ShowDock:              "show-dock",
	HideDock:              "hide-dock",
	MinimizeActiveCard:    "minimize-active-card",
	MaximizeActiveCard:    "maximize-active-card",
	SwitchCard:            "switch-card",
	ChangeCardWindow:      "change-card-window",
	OpenDashboard:         "open-dashboard",
	CloseDashboard:        "close-dashboard",
	DismissNotification:   "dismiss-notification",
	CloseAlert:            "close-alert",
	HideMenu:              "hide-menu",
	ToggleUniversalSearch: "toggle-universal-search",
	HideUniversalSearch:   "hide-universal-search",
	EnterDockMode:         "enter-dock-mode",
	ExitDockMode:          "exit-dock-mode",
	SpreadOpen:            "spread-open",
	TapCard:               "tap-card",
	PointerPress:          "pointer-press",
	PointerMove:           "pointer-move",
	PointerRelease:        "pointer-release",
	SwitchGesture:         "switch-gesture",
	MinimizeGesture:       "minimize-gesture",
	SpreadGesture:         "spread-gesture",
	OrientationChanged:    "orientation-changed",
	StateChanged:          "state-changed",
	FocusChanged:          "focus-changed",
	DirectRendering:       "direct-rendering",
	ScenePrepare:          "scene-prepare",
	SceneRun:              "scene-run",
	SceneCancel:           "scene-cancel",
	SceneFinished:         "scene-finished",
	CardActivated:         "card-activated",
	DeckReordered:         "deck-reordered",
	GroupChanged:          "group-changed",
}

// String returns the string representation of a Kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalJSON encodes the kind by name
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// ParseKind converts a string to Kind
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return None, false
}

// KindNames returns every kind name, sorted
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, name := range kindNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Phase marks the step of a continuous gesture feedback intent
type Phase int

const (
	PhaseNone Phase = iota
	PhaseBegin
	PhaseUpdate
	PhaseEnd
	PhaseCancel
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseUpdate:
		return "update"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return ""
	}
}

// MarshalJSON encodes the phase by name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Intent is one outbound action. Only the fields relevant to Kind are set.
type Intent struct {
	ID          string            `json:"id"`
	Kind        Kind              `json:"kind"`
	Direction   types.Direction   `json:"direction"`
	Force       bool              `json:"force,omitempty"`
	Enabled     bool              `json:"enabled,omitempty"`
	Phase       Phase             `json:"phase,omitempty"`
	Value       float64           `json:"value,omitempty"`
	Pos         types.Point       `json:"pos"`
	Window      uint32            `json:"window,omitempty"`
	Name        string            `json:"name,omitempty"`
	Scene       string            `json:"scene,omitempty"`
	Orientation types.Orientation `json:"orientation"`
}

// New creates an intent of the given kind with a fresh id
func New(kind Kind) Intent {
	return Intent{ID: uuid.New().String(), Kind: kind}
}

// WithDirection returns a copy carrying a direction
func (i Intent) WithDirection(d types.Direction) Intent {
	i.Direction = d
	return i
}

// WithWindow returns a copy carrying a window id
func (i Intent) WithWindow(w uint32) Intent {
	i.Window = w
	return i
}

// WithPhase returns a copy carrying a gesture phase and value
func (i Intent) WithPhase(p Phase, v float64) Intent {
	i.Phase = p
	i.Value = v
	return i
}

// WithPos returns a copy carrying a canonical screen position
func (i Intent) WithPos(p types.Point) Intent {
	i.Pos = p
	return i
}

// String renders the intent for logs and tables
func (i Intent) String() string {
	s := i.Kind.String()
	switch i.Kind {
	case SwitchCard, ChangeCardWindow:
		s += "(" + i.Direction.String() + ")"
	case SwitchGesture, MinimizeGesture, SpreadGesture:
		s += "(" + i.Phase.String() + ")"
	case StateChanged:
		s += "(" + i.Name + ")"
	case CloseDashboard:
		if i.Force {
			s += "(force)"
		}
	}
	return s
}
