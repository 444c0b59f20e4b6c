package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/cardshell/internal/suggest"
)

// Key is the enumerated key space
type Key int

const (
	KeyNone Key = iota

	// CoreNavi keys
	KeyHome
	KeyBack
	KeyMenu
	KeyLauncher
	KeyNext
	KeyPrevious
	KeyQuickLaunch
	KeySwipeDown

	// Standard keys
	KeyEscape
	KeySearch
	KeyMeta
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeySpace
)

var keyNames = map[Key]string{
	KeyHome:        "Home",
	KeyBack:        "Back",
	KeyMenu:        "Menu",
	KeyLauncher:    "Launcher",
	KeyNext:        "Next",
	KeyPrevious:    "Previous",
	KeyQuickLaunch: "QuickLaunch",
	KeySwipeDown:   "SwipeDown",
	KeyEscape:      "Escape",
	KeySearch:      "Search",
	KeyMeta:        "Meta",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyEnter:       "Enter",
	KeySpace:       "Space",
}

// String returns the key name
func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "None"
}

// IsCoreNavi reports whether k is one of the gesture-area navigation keys
func (k Key) IsCoreNavi() bool {
	return k >= KeyHome && k <= KeySwipeDown
}

// IsArrow reports whether k is an arrow key
func (k Key) IsArrow() bool {
	return k >= KeyLeft && k <= KeyDown
}

// KeyNames returns every key name, sorted
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for _, n := range keyNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseKey converts a key name to Key. Names are case insensitive;
// a "CoreNavi_" prefix is accepted.
func ParseKey(s string) (Key, error) {
	name := strings.TrimPrefix(s, "CoreNavi_")
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	if match, ok := suggest.Closest(name, KeyNames()); ok {
		return KeyNone, fmt.Errorf("unknown key %q (did you mean %q?)", s, match)
	}
	return KeyNone, fmt.Errorf("unknown key %q", s)
}
