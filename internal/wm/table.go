package wm

import "github.com/yourusername/cardshell/internal/intent"

type (
	guard  func(m *Manager, ev Event) bool
	effect func(m *Manager, ev Event)
)

// rule is one transition. The first rule whose guard passes fires.
// Resolve, when set, picks the next state instead of Next. A next state
// equal to the current one is an internal transition.
type rule struct {
	Guard   guard
	Next    State
	Resolve func(m *Manager, ev Event) State
	Effects []effect
}

type tableKey struct {
	state State
	kind  EventKind
}

// table maps (state, event kind) to candidate rules, with per-state entry
// and exit effects
type table struct {
	rules   map[tableKey][]rule
	onEnter map[State][]effect
	onExit  map[State][]effect
}

func (t *table) on(s State, k EventKind, r rule) {
	key := tableKey{s, k}
	t.rules[key] = append(t.rules[key], r)
}

// lookup returns the state rules followed by the any-state rules
func (t *table) lookup(s State, k EventKind) []rule {
	specific := t.rules[tableKey{s, k}]
	general := t.rules[tableKey{anyState, k}]
	out := make([]rule, 0, len(specific)+len(general))
	out = append(out, specific...)
	return append(out, general...)
}

func fx(e ...effect) []effect { return e }

func phaseIs(p intent.Phase) guard {
	return func(_ *Manager, ev Event) bool { return ev.Phase == p }
}

func hasActive(m *Manager, _ Event) bool { return m.arena.ActiveWindow() != 0 }

func noScene(m *Manager, _ Event) bool { return m.scene == nil }

func newTable() *table {
	t := &table{
		rules:   make(map[tableKey][]rule),
		onEnter: make(map[State][]effect),
		onExit:  make(map[State][]effect),
	}

	browsing := []State{Minimize, Group, Maximize}

	// Deck
	t.on(Minimize, EvMaximize, rule{Guard: hasActive, Next: Maximize})
	t.on(Minimize, EvTap, rule{Guard: tapHit, Next: Maximize, Effects: fx(activateTapped)})
	t.on(Minimize, EvSwitchCard, rule{Next: stay, Effects: fx(stepDeck)})
	t.on(Minimize, EvChangeCard, rule{Next: stay, Effects: fx(stepDeck)})
	t.on(Minimize, EvPointerPress, rule{Next: stay, Effects: fx(beginPress)})
	t.on(Minimize, EvPointerMove, rule{Next: stay, Effects: fx(trackPress)})
	t.on(Minimize, EvPointerRelease, rule{Next: stay, Effects: fx(endPress)})
	t.on(Minimize, EvTick, rule{Guard: holdElapsed, Next: Reorder, Effects: fx(beginDrag)})
	t.on(Minimize, EvSpreadOpen, rule{Guard: spreadsIntoGroup, Next: Group})

	// Group
	t.on(Group, EvMaximize, rule{Guard: hasActive, Next: Maximize})
	t.on(Group, EvMinimize, rule{Next: Minimize})
	t.on(Group, EvTap, rule{Guard: tapHit, Next: Maximize, Effects: fx(activateTapped)})
	t.on(Group, EvSwitchCard, rule{Next: stay, Effects: fx(cycleTab)})
	t.on(Group, EvChangeCard, rule{Resolve: afterGroupStep, Effects: fx(stepDeck)})
	t.on(Group, EvSpreadOpen, rule{Guard: pinchedClosed, Next: Minimize})

	for _, s := range []State{Minimize, Group} {
		t.on(s, EvSpreadGesture, rule{Guard: phaseIs(intent.PhaseBegin), Next: SpreadGesture, Effects: fx(recordGesture)})
	}

	// Maximize
	t.on(Maximize, EvMinimize, rule{Next: Minimize})
	t.on(Maximize, EvSwitchCard, rule{Next: stay, Effects: fx(switchMaximized)})
	t.on(Maximize, EvChangeCard, rule{Next: stay, Effects: fx(switchMaximized)})
	t.on(Maximize, EvSwitchGesture, rule{Guard: phaseIs(intent.PhaseBegin), Next: SwitchGesture, Effects: fx(recordGesture)})
	t.on(Maximize, EvMinimizeGesture, rule{Guard: phaseIs(intent.PhaseBegin), Next: MinimizeGesture, Effects: fx(recordGesture)})
	t.on(Maximize, EvModalLaunched, rule{Guard: modalOverActive, Next: stay, Effects: fx(pushModal)})

	t.onEnter[Maximize] = fx(exitReorder, closeOverlays, grantDirect, focusActive)
	t.onExit[Maximize] = fx(revokeDirect)
	t.onEnter[Minimize] = fx(exitReorder)

	// Card lifecycle
	for _, s := range browsing {
		t.on(s, EvCardAdded, rule{Guard: noScene, Next: Preparing, Effects: fx(placeCard, prepareLaunch, startPlacement)})
		t.on(s, EvFocusRequest, rule{Guard: knownWindow, Next: Focus, Effects: fx(beginFocus)})
	}
	t.on(anyState, EvCardAdded, rule{Next: stay, Effects: fx(placeBehind)})
	t.on(Preparing, EvPlacementDone, rule{Guard: pendingReady, Next: stay, Effects: fx(runLaunch)})
	t.on(Preparing, EvPlacementDone, rule{Next: Loading})
	t.on(Loading, EvContentReady, rule{Guard: isPending, Next: stay, Effects: fx(markReady, runLaunch)})
	t.on(anyState, EvContentReady, rule{Next: stay, Effects: fx(markReady)})
	for _, s := range []State{Preparing, Loading} {
		t.on(s, EvFocusRequest, rule{Guard: knownWindow, Next: stay, Effects: fx(deferFocus)})
	}
	t.on(anyState, EvCardClosed, rule{Resolve: afterClose, Effects: fx(closeCard)})

	// Focus
	t.on(Focus, EvFocusAck, rule{Guard: acksFocus, Resolve: returnToOrigin, Effects: fx(endFocus)})
	t.on(Focus, EvTick, rule{Guard: focusTimedOut, Resolve: returnToOrigin, Effects: fx(focusTimeout, endFocus)})
	t.on(Focus, EvMinimize, rule{Next: Minimize, Effects: fx(endFocus)})
	t.on(Focus, EvMaximize, rule{Guard: hasActive, Next: Maximize, Effects: fx(endFocus)})

	// Reorder
	t.on(Reorder, EvPointerMove, rule{Next: stay, Effects: fx(dragTo)})
	t.on(Reorder, EvPointerRelease, rule{Next: Minimize, Effects: fx(dropDrag)})
	t.on(Reorder, EvMaximize, rule{Guard: hasActive, Next: Maximize})

	// Fluid gestures
	t.on(SwitchGesture, EvSwitchGesture, rule{Guard: phaseIs(intent.PhaseUpdate), Next: stay, Effects: fx(recordGesture)})
	t.on(SwitchGesture, EvSwitchGesture, rule{Guard: phaseIs(intent.PhaseEnd), Next: Maximize, Effects: fx(commitSwitch)})
	t.on(SwitchGesture, EvSwitchGesture, rule{Guard: phaseIs(intent.PhaseCancel), Next: Maximize})
	t.on(MinimizeGesture, EvMinimizeGesture, rule{Guard: phaseIs(intent.PhaseUpdate), Next: stay, Effects: fx(recordGesture)})
	t.on(MinimizeGesture, EvMinimizeGesture, rule{Guard: phaseIs(intent.PhaseEnd), Resolve: minimizeOutcome})
	t.on(MinimizeGesture, EvMinimizeGesture, rule{Guard: phaseIs(intent.PhaseCancel), Next: Maximize})
	t.on(SpreadGesture, EvSpreadGesture, rule{Guard: phaseIs(intent.PhaseUpdate), Next: stay, Effects: fx(recordGesture)})
	t.on(SpreadGesture, EvSpreadGesture, rule{Guard: phaseIs(intent.PhaseEnd), Resolve: spreadOutcome})
	t.on(SpreadGesture, EvSpreadGesture, rule{Guard: phaseIs(intent.PhaseCancel), Resolve: returnToOrigin})

	// Modal cards
	t.on(anyState, EvModalLaunched, rule{Next: stay, Effects: fx(rejectModal)})
	t.on(anyState, EvModalDismissed, rule{Guard: hasModal, Resolve: afterDismiss, Effects: fx(popModal)})

	t.on(anyState, EvScenePrepare, rule{Next: Preparing, Effects: fx(prepareScene)})
	t.on(anyState, EvOrientation, rule{Next: stay, Effects: fx(orientFocused)})

	return t
}
