package input

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/gesture"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

// OrientationSetter receives device rotation changes
type OrientationSetter interface {
	SetOrientation(o types.Orientation) error
}

// Router decides, per input event and current UI mode, whether the event
// is consumed and which intents it produces. It never launches,
// renders or animates anything itself.
type Router struct {
	settings *config.Settings
	orient   OrientationSetter
	out      *intent.Queue
	modes    Mode
	log      zerolog.Logger

	// slide-mode latch, per edge recognizer instance
	fired map[int]bool
	// spread-open latch, per pinch recognizer instance
	spread map[int]bool

	primary     int
	pointerDown bool
}

// NewRouter creates a router emitting into out
func NewRouter(s *config.Settings, orient OrientationSetter, out *intent.Queue, log zerolog.Logger) *Router {
	return &Router{
		settings: s,
		orient:   orient,
		out:      out,
		log:      log,
		fired:    make(map[int]bool),
		spread:   make(map[int]bool),
	}
}

// Modes returns the current mode flags
func (r *Router) Modes() Mode {
	return r.modes
}

// Has reports whether the flag is set
func (r *Router) Has(f Mode) bool {
	return r.modes.Has(f)
}

// SetMode sets or clears a mode flag as reported by a collaborator
func (r *Router) SetMode(f Mode, on bool) {
	r.modes = r.modes.With(f, on)
}

// CloseOverlays clears the overlay and wave bar flags without emitting
// anything. The card manager closes them itself when a card is maximized.
func (r *Router) CloseOverlays() {
	r.modes = r.modes.With(DashboardOpen|LauncherShown|MenuVisible|WaveBarActive, false)
}

// SetDockMode enters or leaves dock mode, emitting the matching intent
// when the mode actually changes
func (r *Router) SetDockMode(on bool) {
	if r.Has(DockMode) == on {
		return
	}
	r.SetMode(DockMode, on)
	if on {
		r.emit(intent.New(intent.EnterDockMode))
	} else {
		r.emit(intent.New(intent.ExitDockMode))
	}
}

// Dispatch routes one event and reports whether it was consumed.
// Unconsumed events belong to the focused application.
func (r *Router) Dispatch(ev Event) bool {
	switch e := ev.(type) {
	case KeyEvent:
		return r.handleKey(e)
	case TouchEvent:
		return r.handleTouch(e.Frame)
	case GestureEvent:
		return r.handleGesture(e.Gesture)
	case OrientationEvent:
		return r.handleOrientation(e.Orientation)
	default:
		return false
	}
}

func (r *Router) emit(in intent.Intent) {
	r.log.Debug().Str("intent", in.String()).Str("modes", r.modes.String()).Msg("emit")
	r.out.Push(in)
}

// restricted reports whether system UI gestures and shortcuts are off
func (r *Router) restricted() bool {
	return r.Has(DeviceLocked) || r.Has(EmergencyMode) || r.Has(DockMode)
}

func (r *Router) overlayActive() bool {
	return r.Has(DashboardOpen) || r.Has(MenuVisible) || r.Has(LauncherShown)
}

func (r *Router) handleKey(k KeyEvent) bool {
	if k.Key == KeyMeta {
		r.SetMode(SuperKeyHeld, k.Pressed)
		return true
	}

	if k.Key.IsCoreNavi() {
		if k.Key == KeyBack || k.Key == KeyMenu {
			if !r.overlayActive() {
				return false
			}
			if k.Pressed {
				return true
			}
			return r.closeTopOverlay()
		}
		// Intercept on press, act on release
		if k.Pressed {
			return true
		}
		return r.coreNaviRelease(k)
	}

	if !k.Pressed {
		return false
	}

	if k.Key.IsArrow() && r.Has(SuperKeyHeld) && !r.restricted() {
		return r.superArrow(k.Key)
	}

	switch k.Key {
	case KeyEscape:
		return r.escape()
	case KeySearch:
		if r.restricted() {
			return false
		}
		r.toggle(UniversalSearchShown)
		r.emit(intent.New(intent.ToggleUniversalSearch))
		return true
	}
	return false
}

func (r *Router) coreNaviRelease(k KeyEvent) bool {
	if k.Key == KeyHome {
		return r.home(k.AutoRepeat)
	}

	if r.Has(DeviceLocked) {
		return false
	}
	if r.Has(EmergencyMode) || r.Has(DockMode) {
		return true
	}

	switch k.Key {
	case KeyLauncher:
		r.toggle(LauncherShown)
		r.emit(intent.New(intent.ToggleLauncher))
	case KeyQuickLaunch:
		r.SetMode(WaveBarActive, true)
		r.emit(intent.New(intent.ShowDock))
	case KeySwipeDown:
		r.SetMode(WaveBarActive, false)
		r.emit(intent.New(intent.HideDock))
	case KeyNext:
		r.switchCard(types.DirRight)
	case KeyPrevious:
		r.switchCard(types.DirLeft)
	}
	return true
}

// home applies the Home release precedence. A repeated release while a
// card is maximized minimizes it; a single release toggles the launcher.
func (r *Router) home(autoRepeat bool) bool {
	switch {
	case r.Has(DockMode):
		r.SetDockMode(false)
	case r.Has(DeviceLocked):
		return false
	case r.Has(EmergencyMode):
	case r.Has(DashboardOpen):
		r.SetMode(DashboardOpen, false)
		r.emit(intent.New(intent.CloseDashboard))
	case r.Has(AlertActive):
		r.SetMode(AlertActive, false)
		r.emit(intent.New(intent.CloseAlert))
	case r.Has(MenuVisible):
		r.SetMode(MenuVisible, false)
		r.emit(intent.New(intent.HideMenu))
	case r.Has(LauncherShown):
		r.SetMode(LauncherShown, false)
		r.emit(intent.New(intent.HideLauncher))
	case r.Has(UniversalSearchShown):
		r.SetMode(UniversalSearchShown, false)
		r.emit(intent.New(intent.HideUniversalSearch))
	case r.Has(CardMaximized) && autoRepeat:
		r.emit(intent.New(intent.MinimizeActiveCard))
	default:
		r.toggle(LauncherShown)
		r.emit(intent.New(intent.ToggleLauncher))
	}
	return true
}

func (r *Router) closeTopOverlay() bool {
	switch {
	case r.Has(DashboardOpen):
		r.SetMode(DashboardOpen, false)
		r.emit(intent.New(intent.CloseDashboard))
	case r.Has(MenuVisible):
		r.SetMode(MenuVisible, false)
		r.emit(intent.New(intent.HideMenu))
	case r.Has(LauncherShown):
		r.SetMode(LauncherShown, false)
		r.emit(intent.New(intent.HideLauncher))
	default:
		return false
	}
	return true
}

// escape dismisses the topmost notification on the lock screen and
// otherwise opens or closes the dashboard
func (r *Router) escape() bool {
	switch {
	case r.Has(DockMode) || r.Has(EmergencyMode):
		return false
	case r.Has(DeviceLocked):
		r.emit(intent.New(intent.DismissNotification))
	case r.Has(DashboardOpen):
		r.SetMode(DashboardOpen, false)
		r.emit(intent.New(intent.CloseDashboard))
	default:
		r.SetMode(DashboardOpen, true)
		r.emit(intent.New(intent.OpenDashboard))
	}
	return true
}

func (r *Router) superArrow(k Key) bool {
	switch k {
	case KeyLeft:
		r.switchCard(types.DirLeft)
	case KeyRight:
		r.switchCard(types.DirRight)
	case KeyUp:
		r.emit(intent.New(intent.MaximizeActiveCard))
	case KeyDown:
		r.emit(intent.New(intent.MinimizeActiveCard))
	}
	return true
}

func (r *Router) switchCard(d types.Direction) {
	if r.Has(ModalCardActive) {
		r.log.Debug().Msg("card switch blocked by modal card")
		return
	}
	r.emit(intent.New(intent.SwitchCard).WithDirection(d))
}

func (r *Router) toggle(f Mode) {
	r.SetMode(f, !r.Has(f))
}

func (r *Router) handleGesture(g gesture.Event) bool {
	if g.Transition == gesture.Finish || g.Transition == gesture.Cancel {
		defer r.clearLatches(g.Instance)
	}
	if r.restricted() {
		return false
	}
	// The wave bar owns edge and pinch strokes while it is shown
	if r.Has(WaveBarActive) && g.Kind != gesture.KindTap {
		return true
	}

	switch g.Kind {
	case gesture.KindEdge:
		return r.edgeGesture(g)
	case gesture.KindCardSwitch:
		return r.cardSwitchGesture(g)
	case gesture.KindPinch:
		return r.pinchGesture(g)
	case gesture.KindTap:
		r.emit(intent.New(intent.TapCard).WithPos(g.Position))
		return true
	}
	return false
}

func (r *Router) clearLatches(instance int) {
	delete(r.fired, instance)
	delete(r.spread, instance)
}

func (r *Router) edgeGesture(g gesture.Event) bool {
	mode := r.settings.GestureDetectionMode

	if g.Edge == gesture.EdgeBottom {
		if mode == config.DetectFluid && r.Has(CardMaximized) {
			r.emit(intent.New(intent.MinimizeGesture).
				WithPhase(feedbackPhase(g.Transition), g.Start.Y-g.Position.Y))
			return true
		}
		if g.Transition != gesture.Finish {
			return true
		}
		if r.Has(CardMaximized) {
			r.emit(intent.New(intent.MinimizeActiveCard))
		} else {
			r.toggle(LauncherShown)
			r.emit(intent.New(intent.ToggleLauncher))
		}
		return true
	}

	// Side edges switch between maximized cards; the deck uses the
	// card-switch recognizer instead.
	if !r.settings.EnableNextPrevGestures || !r.Has(CardMaximized) {
		return false
	}
	if r.Has(ModalCardActive) {
		return true
	}

	dir, inward := types.DirRight, -1
	if g.Edge == gesture.EdgeLeft {
		dir, inward = types.DirLeft, 1
	}

	switch mode {
	case config.DetectFlick:
		if g.Transition == gesture.Finish && g.Flick == inward {
			r.switchCard(dir)
		}
	case config.DetectSlide:
		if (g.Transition == gesture.Start || g.Transition == gesture.Update) && !r.fired[g.Instance] {
			r.fired[g.Instance] = true
			r.switchCard(dir)
		}
	case config.DetectFluid:
		r.emit(intent.New(intent.SwitchGesture).
			WithDirection(dir).
			WithPhase(feedbackPhase(g.Transition), g.Position.X-g.Start.X))
	}
	return true
}

func (r *Router) cardSwitchGesture(g gesture.Event) bool {
	if !r.settings.EnableAppSwitchGestures || r.Has(ModalCardActive) || r.Has(CardMaximized) {
		return false
	}
	if g.Transition == gesture.Start {
		r.emit(intent.New(intent.ChangeCardWindow).WithDirection(g.Direction))
	}
	return true
}

func (r *Router) pinchGesture(g gesture.Event) bool {
	if r.settings.GestureDetectionMode == config.DetectFluid {
		r.emit(intent.New(intent.SpreadGesture).WithPhase(feedbackPhase(g.Transition), g.Scale))
	}
	if g.Transition == gesture.Update && !r.spread[g.Instance] &&
		math.Abs(g.Scale-1) >= r.settings.PinchThreshold {
		r.spread[g.Instance] = true
		in := intent.New(intent.SpreadOpen)
		in.Value = g.Scale
		r.emit(in)
	}
	return true
}

func feedbackPhase(t gesture.Transition) intent.Phase {
	switch t {
	case gesture.Start:
		return intent.PhaseBegin
	case gesture.Update:
		return intent.PhaseUpdate
	case gesture.Finish:
		return intent.PhaseEnd
	default:
		return intent.PhaseCancel
	}
}

// handleTouch turns the primary finger into pointer intents for the
// card manager. The primary is tracked while locked so its release is
// never lost.
func (r *Router) handleTouch(f touch.Frame) bool {
	if r.pointerDown {
		p, ok := f.Point(r.primary)
		switch {
		case !ok:
			r.log.Debug().Int("finger", r.primary).Msg("primary finger missing, dropping pointer")
			r.pointerDown = false
		case p.State == touch.Released:
			r.pointerDown = false
			if r.Has(DeviceLocked) {
				return false
			}
			r.emit(intent.New(intent.PointerRelease).WithPos(p.Position))
			return true
		case p.State == touch.Pressed:
			// a new contact reusing the id starts a new press
			r.pointerDown = false
		default:
			if r.Has(DeviceLocked) {
				return false
			}
			if p.State == touch.Moved {
				r.emit(intent.New(intent.PointerMove).WithPos(p.Position))
			}
			return true
		}
	}

	if r.Has(DeviceLocked) {
		return false
	}
	for _, p := range f.Points {
		if p.State == touch.Pressed {
			r.primary = p.ID
			r.pointerDown = true
			r.emit(intent.New(intent.PointerPress).WithPos(p.Position))
			return true
		}
	}
	return false
}

func (r *Router) handleOrientation(o types.Orientation) bool {
	if err := r.orient.SetOrientation(o); err != nil {
		return false
	}
	in := intent.New(intent.OrientationChanged)
	in.Orientation = o
	r.emit(in)
	return true
}
