package wm

import (
	"fmt"
	"strings"

	"github.com/yourusername/cardshell/internal/suggest"
)

// State is the active card manager state. Exactly one is active.
type State int

const (
	Minimize State = iota
	Group
	Maximize
	Preparing
	Loading
	Focus
	Reorder
	SwitchGesture
	MinimizeGesture
	SpreadGesture
)

// Table pseudo-states
const (
	stay     State = -1 // internal transition, no exit or entry effects
	anyState State = -2 // rule applies in every state
)

var stateNames = map[State]string{
	Minimize:        "minimize",
	Group:           "group",
	Maximize:        "maximize",
	Preparing:       "preparing",
	Loading:         "loading",
	Focus:           "focus",
	Reorder:         "reorder",
	SwitchGesture:   "switch-gesture",
	MinimizeGesture: "minimize-gesture",
	SpreadGesture:   "spread-gesture",
}

// String returns the state name
func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// StateNames returns every state name in declaration order
func StateNames() []string {
	names := make([]string, 0, len(stateNames))
	for s := Minimize; s <= SpreadGesture; s++ {
		names = append(names, stateNames[s])
	}
	return names
}

// ParseState converts a state name to State
func ParseState(s string) (State, error) {
	for st, n := range stateNames {
		if strings.EqualFold(n, s) {
			return st, nil
		}
	}
	if match, ok := suggest.Closest(s, StateNames()); ok {
		return 0, fmt.Errorf("unknown state %q (did you mean %q?)", s, match)
	}
	return 0, fmt.Errorf("unknown state %q", s)
}

// transient reports whether the state is a short-lived gesture or
// arbitration state that returns to its origin
func (s State) transient() bool {
	switch s {
	case Focus, SwitchGesture, MinimizeGesture, SpreadGesture:
		return true
	default:
		return false
	}
}
