package input

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/gesture"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

type fakeOrient struct {
	got types.Orientation
}

func (f *fakeOrient) SetOrientation(o types.Orientation) error {
	if !o.Valid() {
		return errors.New("bad orientation")
	}
	f.got = o
	return nil
}

func newTestRouter(mutate func(*config.Settings)) (*Router, *intent.Queue) {
	s := config.Defaults()
	if mutate != nil {
		mutate(&s)
	}
	q := intent.NewQueue()
	return NewRouter(&s, &fakeOrient{}, q, zerolog.Nop()), q
}

func release(k Key, repeat bool) KeyEvent {
	return KeyEvent{Key: k, Pressed: false, AutoRepeat: repeat}
}

func press(k Key) KeyEvent {
	return KeyEvent{Key: k, Pressed: true}
}

func kinds(q *intent.Queue) []intent.Kind {
	var out []intent.Kind
	for _, in := range q.Drain() {
		out = append(out, in.Kind)
	}
	return out
}

func equalKinds(a, b []intent.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHomePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		modes    Mode
		repeat   bool
		want     []intent.Kind
		handled  bool
		cleared  Mode
		setAfter Mode
	}{
		{"dock exit wins", DockMode | DeviceLocked | DashboardOpen, false, []intent.Kind{intent.ExitDockMode}, true, DockMode, 0},
		{"emergency consumes", EmergencyMode | DashboardOpen, false, nil, true, 0, 0},
		{"dashboard before alert", DashboardOpen | AlertActive, false, []intent.Kind{intent.CloseDashboard}, true, DashboardOpen, 0},
		{"alert before menu", AlertActive | MenuVisible, false, []intent.Kind{intent.CloseAlert}, true, AlertActive, 0},
		{"menu before launcher", MenuVisible | LauncherShown, false, []intent.Kind{intent.HideMenu}, true, MenuVisible, 0},
		{"launcher before search", LauncherShown | UniversalSearchShown, false, []intent.Kind{intent.HideLauncher}, true, LauncherShown, 0},
		{"search before minimize", UniversalSearchShown | CardMaximized, true, []intent.Kind{intent.HideUniversalSearch}, true, UniversalSearchShown, 0},
		{"repeat minimizes maximized card", CardMaximized, true, []intent.Kind{intent.MinimizeActiveCard}, true, 0, 0},
		{"single release toggles launcher", CardMaximized, false, []intent.Kind{intent.ToggleLauncher}, true, 0, LauncherShown},
		{"idle toggles launcher", 0, true, []intent.Kind{intent.ToggleLauncher}, true, 0, LauncherShown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, q := newTestRouter(nil)
			r.modes = tt.modes

			if !r.Dispatch(press(KeyHome)) {
				t.Error("Home press not intercepted")
			}
			got := r.Dispatch(release(KeyHome, tt.repeat))
			if got != tt.handled {
				t.Errorf("Dispatch() = %v, want %v", got, tt.handled)
			}
			if k := kinds(q); !equalKinds(k, tt.want) {
				t.Errorf("intents = %v, want %v", k, tt.want)
			}
			if tt.cleared != 0 && r.Has(tt.cleared) {
				t.Errorf("flag %s still set", tt.cleared)
			}
			if tt.setAfter != 0 && !r.Has(tt.setAfter) {
				t.Errorf("flag %s not set", tt.setAfter)
			}
		})
	}
}

func TestHomeRepeatNeverTogglesWhenMaximized(t *testing.T) {
	r, q := newTestRouter(nil)
	r.SetMode(CardMaximized, true)

	r.Dispatch(release(KeyHome, true))
	got := kinds(q)
	if !equalKinds(got, []intent.Kind{intent.MinimizeActiveCard}) {
		t.Errorf("repeat release = %v, want minimize", got)
	}

	r.Dispatch(release(KeyHome, false))
	for _, k := range kinds(q) {
		if k == intent.MinimizeActiveCard {
			t.Error("single release minimized the card")
		}
	}
}

func TestHomeLockedNotHandled(t *testing.T) {
	r, q := newTestRouter(nil)
	before := DeviceLocked | DashboardOpen | LauncherShown
	r.modes = before

	if r.Dispatch(release(KeyHome, false)) {
		t.Error("locked Home release reported handled")
	}
	if r.Modes() != before {
		t.Errorf("modes = %s, want %s unchanged", r.Modes(), before)
	}
	if q.Len() != 0 {
		t.Errorf("locked Home emitted %v", kinds(q))
	}
}

func TestBackMenuPassThrough(t *testing.T) {
	r, q := newTestRouter(nil)

	if r.Dispatch(press(KeyBack)) || r.Dispatch(release(KeyBack, false)) {
		t.Error("Back consumed with no overlay open")
	}
	if r.Dispatch(release(KeyMenu, false)) {
		t.Error("Menu consumed with no overlay open")
	}

	r.SetMode(MenuVisible, true)
	if !r.Dispatch(press(KeyBack)) || !r.Dispatch(release(KeyBack, false)) {
		t.Error("Back not consumed with menu visible")
	}
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.HideMenu}) {
		t.Errorf("intents = %v, want hide-menu", got)
	}
}

func TestCoreNaviKeys(t *testing.T) {
	tests := []struct {
		key  Key
		want intent.Kind
		dir  types.Direction
	}{
		{KeyLauncher, intent.ToggleLauncher, 0},
		{KeyQuickLaunch, intent.ShowDock, 0},
		{KeySwipeDown, intent.HideDock, 0},
		{KeyNext, intent.SwitchCard, types.DirRight},
		{KeyPrevious, intent.SwitchCard, types.DirLeft},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			r, q := newTestRouter(nil)
			if !r.Dispatch(press(tt.key)) {
				t.Error("press not intercepted")
			}
			if q.Len() != 0 {
				t.Error("press emitted an intent")
			}
			r.Dispatch(release(tt.key, false))
			got := q.Drain()
			if len(got) != 1 || got[0].Kind != tt.want {
				t.Fatalf("intents = %v, want %s", got, tt.want)
			}
			if tt.want == intent.SwitchCard && got[0].Direction != tt.dir {
				t.Errorf("direction = %s, want %s", got[0].Direction, tt.dir)
			}
		})
	}
}

func TestEscapeAndSearch(t *testing.T) {
	r, q := newTestRouter(nil)

	r.Dispatch(press(KeyEscape))
	r.Dispatch(press(KeyEscape))
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.OpenDashboard, intent.CloseDashboard}) {
		t.Errorf("escape twice = %v", got)
	}

	r.SetMode(DeviceLocked, true)
	r.Dispatch(press(KeyEscape))
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.DismissNotification}) {
		t.Errorf("escape locked = %v, want dismiss-notification", got)
	}
	if r.Dispatch(press(KeySearch)) || q.Len() != 0 {
		t.Error("search handled while locked")
	}

	r.SetMode(DeviceLocked, false)
	r.SetMode(DockMode, true)
	if r.Dispatch(press(KeyEscape)) || r.Dispatch(press(KeySearch)) || q.Len() != 0 {
		t.Error("escape or search handled while docked")
	}

	r.SetMode(DockMode, false)
	if !r.Dispatch(press(KeySearch)) || !r.Has(UniversalSearchShown) {
		t.Error("search did not toggle universal search")
	}
}

func TestSuperArrows(t *testing.T) {
	r, q := newTestRouter(nil)
	r.Dispatch(press(KeyMeta))
	if !r.Has(SuperKeyHeld) {
		t.Fatal("meta press did not set super flag")
	}

	r.Dispatch(press(KeyLeft))
	r.Dispatch(press(KeyUp))
	r.Dispatch(press(KeyDown))
	want := []intent.Kind{intent.SwitchCard, intent.MaximizeActiveCard, intent.MinimizeActiveCard}
	if got := kinds(q); !equalKinds(got, want) {
		t.Errorf("intents = %v, want %v", got, want)
	}

	r.Dispatch(KeyEvent{Key: KeyMeta})
	if r.Dispatch(press(KeyLeft)) {
		t.Error("arrow consumed without super held")
	}
}

func edge(inst int, e gesture.Edge, tr gesture.Transition, flick int, start, pos types.Point) GestureEvent {
	return GestureEvent{Gesture: gesture.Event{
		Kind: gesture.KindEdge, Instance: inst, Edge: e, Transition: tr, Flick: flick,
		Start: start, Position: pos,
	}}
}

func TestEdgeFlickMode(t *testing.T) {
	r, q := newTestRouter(nil)
	r.SetMode(CardMaximized, true)
	s, p := types.Point{X: 5, Y: 300}, types.Point{X: 80, Y: 300}

	r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Start, 1, s, p))
	r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Update, 1, s, p))
	if q.Len() != 0 {
		t.Errorf("flick mode switched before finish: %v", kinds(q))
	}
	r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Finish, 1, s, p))
	got := q.Drain()
	if len(got) != 1 || got[0].Kind != intent.SwitchCard || got[0].Direction != types.DirLeft {
		t.Errorf("finish = %v, want switch-card(left)", got)
	}

	// a finish without an inward flick does not switch
	r.Dispatch(edge(2, gesture.EdgeRight, gesture.Finish, 0, s, p))
	if q.Len() != 0 {
		t.Errorf("zero flick switched: %v", kinds(q))
	}
}

func TestEdgeSlideModeLatch(t *testing.T) {
	r, q := newTestRouter(func(s *config.Settings) { s.GestureDetectionMode = config.DetectSlide })
	r.SetMode(CardMaximized, true)
	s, p := types.Point{X: 1020, Y: 300}, types.Point{X: 900, Y: 300}

	r.Dispatch(edge(1, gesture.EdgeRight, gesture.Start, -1, s, p))
	r.Dispatch(edge(1, gesture.EdgeRight, gesture.Update, -1, s, p))
	r.Dispatch(edge(1, gesture.EdgeRight, gesture.Update, -1, s, p))

	// a second concurrent instance has its own latch
	r.Dispatch(edge(2, gesture.EdgeRight, gesture.Start, -1, s, p))
	if got := kinds(q); len(got) != 2 {
		t.Errorf("intents = %v, want one switch per instance", got)
	}

	r.Dispatch(edge(1, gesture.EdgeRight, gesture.Finish, -1, s, p))
	r.Dispatch(edge(1, gesture.EdgeRight, gesture.Start, -1, s, p))
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.SwitchCard}) {
		t.Errorf("after finish = %v, want latch reset", got)
	}
}

func TestEdgeFluidFeedback(t *testing.T) {
	r, q := newTestRouter(func(s *config.Settings) { s.GestureDetectionMode = config.DetectFluid })
	r.SetMode(CardMaximized, true)
	s := types.Point{X: 5, Y: 300}

	r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Start, 1, s, types.Point{X: 60, Y: 300}))
	r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Update, 1, s, types.Point{X: 120, Y: 300}))
	r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Finish, 1, s, types.Point{X: 120, Y: 300}))

	got := q.Drain()
	phases := []intent.Phase{intent.PhaseBegin, intent.PhaseUpdate, intent.PhaseEnd}
	if len(got) != 3 {
		t.Fatalf("intents = %v, want 3 feedback steps", got)
	}
	for i, in := range got {
		if in.Kind != intent.SwitchGesture || in.Phase != phases[i] {
			t.Errorf("intent %d = %s, want switch-gesture(%s)", i, in, phases[i])
		}
	}
	if got[1].Value != 115 {
		t.Errorf("update value = %v, want 115", got[1].Value)
	}
}

func TestEdgeGatedByPreference(t *testing.T) {
	r, q := newTestRouter(func(s *config.Settings) { s.EnableNextPrevGestures = false })
	r.SetMode(CardMaximized, true)

	if r.Dispatch(edge(1, gesture.EdgeLeft, gesture.Finish, 1, types.Point{}, types.Point{X: 80})) {
		t.Error("side edge handled with next/prev gestures disabled")
	}
	if q.Len() != 0 {
		t.Errorf("intents = %v", kinds(q))
	}
}

func TestBottomEdge(t *testing.T) {
	r, q := newTestRouter(nil)
	s, p := types.Point{X: 500, Y: 765}, types.Point{X: 500, Y: 600}

	r.Dispatch(edge(1, gesture.EdgeBottom, gesture.Finish, -1, s, p))
	r.SetMode(CardMaximized, true)
	r.Dispatch(edge(2, gesture.EdgeBottom, gesture.Finish, -1, s, p))

	want := []intent.Kind{intent.ToggleLauncher, intent.MinimizeActiveCard}
	if got := kinds(q); !equalKinds(got, want) {
		t.Errorf("intents = %v, want %v", got, want)
	}
}

func TestGesturesIgnoredWhenRestricted(t *testing.T) {
	for _, m := range []Mode{DeviceLocked, EmergencyMode, DockMode} {
		r, q := newTestRouter(nil)
		r.SetMode(m, true)
		r.SetMode(CardMaximized, true)
		if r.Dispatch(edge(1, gesture.EdgeBottom, gesture.Finish, 0, types.Point{}, types.Point{})) {
			t.Errorf("gesture handled with %s", m)
		}
		if q.Len() != 0 {
			t.Errorf("intents with %s: %v", m, kinds(q))
		}
	}
}

func TestWaveBarSwallowsGestures(t *testing.T) {
	r, q := newTestRouter(nil)
	r.SetMode(CardMaximized, true)

	r.Dispatch(press(KeyQuickLaunch))
	r.Dispatch(release(KeyQuickLaunch, false))
	if !r.Has(WaveBarActive) {
		t.Fatalf("WaveBarActive = false after quick launch")
	}
	q.Drain()

	if !r.Dispatch(edge(1, gesture.EdgeBottom, gesture.Finish, 0, types.Point{}, types.Point{})) {
		t.Errorf("edge gesture not consumed while the wave bar is shown")
	}
	if q.Len() != 0 {
		t.Errorf("intents while the wave bar is shown: %v", kinds(q))
	}
	r.Dispatch(GestureEvent{Gesture: gesture.Event{Kind: gesture.KindTap, Position: types.Point{X: 1, Y: 2}}})
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.TapCard}) {
		t.Errorf("tap intents = %v, want [tap-card]", got)
	}

	r.Dispatch(press(KeySwipeDown))
	r.Dispatch(release(KeySwipeDown, false))
	if r.Has(WaveBarActive) {
		t.Errorf("WaveBarActive = true after swipe down")
	}
	q.Drain()
	r.Dispatch(edge(1, gesture.EdgeBottom, gesture.Finish, 0, types.Point{}, types.Point{}))
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.MinimizeActiveCard}) {
		t.Errorf("intents after wave bar hidden = %v, want [minimize-active-card]", got)
	}
}

func TestCardSwitchGesture(t *testing.T) {
	r, q := newTestRouter(nil)
	ev := GestureEvent{Gesture: gesture.Event{Kind: gesture.KindCardSwitch, Transition: gesture.Start, Direction: types.DirRight}}

	r.Dispatch(ev)
	got := q.Drain()
	if len(got) != 1 || got[0].Kind != intent.ChangeCardWindow || got[0].Direction != types.DirRight {
		t.Errorf("intents = %v, want change-card-window(right)", got)
	}

	r.SetMode(ModalCardActive, true)
	if r.Dispatch(ev) || q.Len() != 0 {
		t.Error("card switch handled while modal card active")
	}

	r2, q2 := newTestRouter(func(s *config.Settings) { s.EnableAppSwitchGestures = false })
	if r2.Dispatch(ev) || q2.Len() != 0 {
		t.Error("card switch handled with app switch gestures disabled")
	}
}

func TestPinchSpreadOnce(t *testing.T) {
	r, q := newTestRouter(nil)
	pinch := func(tr gesture.Transition, scale float64) GestureEvent {
		return GestureEvent{Gesture: gesture.Event{Kind: gesture.KindPinch, Instance: 5, Transition: tr, Scale: scale}}
	}

	r.Dispatch(pinch(gesture.Start, 1))
	r.Dispatch(pinch(gesture.Update, 1.05))
	r.Dispatch(pinch(gesture.Update, 1.12))
	r.Dispatch(pinch(gesture.Update, 1.4))
	r.Dispatch(pinch(gesture.Finish, 1.4))
	if got := kinds(q); !equalKinds(got, []intent.Kind{intent.SpreadOpen}) {
		t.Errorf("intents = %v, want a single spread-open", got)
	}

	r.Dispatch(pinch(gesture.Start, 1))
	r.Dispatch(pinch(gesture.Update, 0.85))
	got := q.Drain()
	if len(got) != 1 || got[0].Kind != intent.SpreadOpen || got[0].Value != 0.85 {
		t.Errorf("second gesture = %v, want spread-open(0.85)", got)
	}
}

func TestTapAndPointer(t *testing.T) {
	r, q := newTestRouter(nil)

	r.Dispatch(GestureEvent{Gesture: gesture.Event{Kind: gesture.KindTap, Position: types.Point{X: 10, Y: 20}}})
	tap := q.Drain()
	if len(tap) != 1 || tap[0].Kind != intent.TapCard || tap[0].Pos != (types.Point{X: 10, Y: 20}) {
		t.Errorf("tap = %v", tap)
	}

	pt := func(s touch.PointState, x float64) TouchEvent {
		return TouchEvent{Frame: touch.Frame{Points: []touch.TouchPoint{{ID: 1, State: s, Position: types.Point{X: x}}}}}
	}
	r.Dispatch(pt(touch.Pressed, 1))
	r.Dispatch(pt(touch.Moved, 2))
	r.Dispatch(pt(touch.Stationary, 2))
	r.Dispatch(pt(touch.Released, 3))
	want := []intent.Kind{intent.PointerPress, intent.PointerMove, intent.PointerRelease}
	if got := kinds(q); !equalKinds(got, want) {
		t.Errorf("pointer intents = %v, want %v", got, want)
	}
}

func TestPointerRecovers(t *testing.T) {
	type step struct {
		lock bool
		id   int
		st   touch.PointState
	}
	tests := []struct {
		name  string
		steps []step
		want  []intent.Kind
	}{
		{
			"release while locked",
			[]step{{false, 1, touch.Pressed}, {true, 1, touch.Released}, {false, 2, touch.Pressed}, {false, 2, touch.Released}},
			[]intent.Kind{intent.PointerPress, intent.PointerPress, intent.PointerRelease},
		},
		{
			"primary missing from frame",
			[]step{{false, 1, touch.Pressed}, {false, 2, touch.Pressed}, {false, 2, touch.Released}},
			[]intent.Kind{intent.PointerPress, intent.PointerPress, intent.PointerRelease},
		},
		{
			"primary id pressed again",
			[]step{{false, 1, touch.Pressed}, {false, 1, touch.Pressed}, {false, 1, touch.Released}},
			[]intent.Kind{intent.PointerPress, intent.PointerPress, intent.PointerRelease},
		},
		{
			"moves while locked are dropped",
			[]step{{false, 1, touch.Pressed}, {true, 1, touch.Moved}, {false, 1, touch.Moved}, {false, 1, touch.Released}},
			[]intent.Kind{intent.PointerPress, intent.PointerMove, intent.PointerRelease},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, q := newTestRouter(nil)
			for _, st := range tt.steps {
				r.SetMode(DeviceLocked, st.lock)
				r.Dispatch(TouchEvent{Frame: touch.Frame{Points: []touch.TouchPoint{{ID: st.id, State: st.st}}}})
			}
			if got := kinds(q); !equalKinds(got, tt.want) {
				t.Errorf("pointer intents = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloseOverlays(t *testing.T) {
	r, q := newTestRouter(nil)
	r.SetMode(DashboardOpen|LauncherShown|MenuVisible|WaveBarActive|CardMaximized, true)

	r.CloseOverlays()
	if r.Has(DashboardOpen) || r.Has(LauncherShown) || r.Has(MenuVisible) || r.Has(WaveBarActive) {
		t.Errorf("modes = %s, want overlays cleared", r.Modes())
	}
	if !r.Has(CardMaximized) {
		t.Errorf("CloseOverlays cleared cardMaximized")
	}
	if q.Len() != 0 {
		t.Errorf("CloseOverlays emitted %v", q.Kinds())
	}
	if r.Dispatch(release(KeyBack, false)) {
		t.Errorf("Back consumed after overlays closed, want pass through")
	}
}

func TestOrientationEvent(t *testing.T) {
	r, q := newTestRouter(nil)
	if !r.Dispatch(OrientationEvent{Orientation: types.OrientationLeft}) {
		t.Fatal("orientation change not handled")
	}
	got := q.Drain()
	if len(got) != 1 || got[0].Kind != intent.OrientationChanged || got[0].Orientation != types.OrientationLeft {
		t.Errorf("intents = %v", got)
	}
	if r.Dispatch(OrientationEvent{Orientation: types.Orientation(42)}) {
		t.Error("unknown orientation handled")
	}
}

func TestDockMode(t *testing.T) {
	r, q := newTestRouter(nil)
	r.SetDockMode(true)
	r.SetDockMode(true)
	r.SetDockMode(false)
	want := []intent.Kind{intent.EnterDockMode, intent.ExitDockMode}
	if got := kinds(q); !equalKinds(got, want) {
		t.Errorf("intents = %v, want %v", got, want)
	}
}

func TestParseKeyAndMode(t *testing.T) {
	if k, err := ParseKey("CoreNavi_Home"); err != nil || k != KeyHome {
		t.Errorf("ParseKey(CoreNavi_Home) = %v, %v", k, err)
	}
	if k, err := ParseKey("quicklaunch"); err != nil || k != KeyQuickLaunch {
		t.Errorf("ParseKey(quicklaunch) = %v, %v", k, err)
	}
	_, err := ParseKey("Lancher")
	if err == nil || !strings.Contains(err.Error(), `"Launcher"`) {
		t.Errorf("ParseKey(Lancher) error = %v, want suggestion", err)
	}

	if m, err := ParseMode("dockmode"); err != nil || m != DockMode {
		t.Errorf("ParseMode(dockmode) = %v, %v", m, err)
	}
	if _, err := ParseMode("deviceLockd"); err == nil || !strings.Contains(err.Error(), "deviceLocked") {
		t.Errorf("ParseMode(deviceLockd) error = %v", err)
	}
}
