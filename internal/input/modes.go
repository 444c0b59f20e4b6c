package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/cardshell/internal/suggest"
)

// Mode is a set of UI mode flags
type Mode uint32

const (
	DeviceLocked Mode = 1 << iota
	DashboardOpen
	MenuVisible
	LauncherShown
	UniversalSearchShown
	EmergencyMode
	DockMode
	ModalCardActive
	SuperKeyHeld
	WaveBarActive
	AlertActive
	CardMaximized
	KeyboardOpen
)

var modeNames = map[Mode]string{
	DeviceLocked:         "deviceLocked",
	DashboardOpen:        "dashboardOpen",
	MenuVisible:          "menuVisible",
	LauncherShown:        "launcherShown",
	UniversalSearchShown: "universalSearchShown",
	EmergencyMode:        "emergencyMode",
	DockMode:             "dockMode",
	ModalCardActive:      "modalCardActive",
	SuperKeyHeld:         "superKeyHeld",
	WaveBarActive:        "waveBarActive",
	AlertActive:          "alertActive",
	CardMaximized:        "cardMaximized",
	KeyboardOpen:         "keyboardOpen",
}

// Has reports whether every flag in f is set
func (m Mode) Has(f Mode) bool {
	return m&f == f
}

// With returns m with f set or cleared
func (m Mode) With(f Mode, on bool) Mode {
	if on {
		return m | f
	}
	return m &^ f
}

// String lists the set flags
func (m Mode) String() string {
	var names []string
	for f, n := range modeNames {
		if m.Has(f) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// ModeNames returns every flag name, sorted
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for _, n := range modeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseMode converts a flag name to Mode
func ParseMode(s string) (Mode, error) {
	for f, n := range modeNames {
		if strings.EqualFold(n, s) {
			return f, nil
		}
	}
	if match, ok := suggest.Closest(s, ModeNames()); ok {
		return 0, fmt.Errorf("unknown mode %q (did you mean %q?)", s, match)
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
