package shell

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/gesture"
	"github.com/yourusername/cardshell/internal/input"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/orientation"
	"github.com/yourusername/cardshell/internal/rendering"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
	"github.com/yourusername/cardshell/internal/wm"
)

// Clock supplies the time for samples that carry none
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock
func SystemClock() Clock { return systemClock{} }

// Recognizer instance ids
const (
	instanceBezel = iota + 1
	instanceCardSwitch
	instancePinch
	instanceTap
)

// Shell is the context object owning every component. All methods must be
// called from one goroutine; Run provides that loop.
type Shell struct {
	settings *config.Settings
	log      zerolog.Logger
	clock    Clock

	Mapper    *orientation.Mapper
	Assembler *touch.Assembler
	Router    *input.Router
	Arena     *cards.Arena
	Arbiter   *rendering.Arbiter
	Manager   *wm.Manager

	bezel       *gesture.BezelRecognizer
	cardSwitch  *gesture.CardSwitchRecognizer
	recognizers []gesture.Recognizer
	lastState   wm.State

	routed *intent.Queue // router output awaiting the manager
	out    *intent.Queue // everything emitted, in order
}

// New wires a shell from a settings snapshot
func New(s *config.Settings, log zerolog.Logger, clock Clock) *Shell {
	if clock == nil {
		clock = SystemClock()
	}
	sh := &Shell{
		settings: s,
		log:      log,
		clock:    clock,
		routed:   intent.NewQueue(),
		out:      intent.NewQueue(),
	}

	sh.Mapper = orientation.New(s, log.With().Str("component", "orientation").Logger())
	sh.Assembler = touch.NewAssembler(sh.Mapper, s.ScreenHeight, s.MetaBandHeight,
		log.With().Str("component", "touch").Logger())
	sh.Router = input.NewRouter(s, sh.Mapper, sh.routed, log.With().Str("component", "router").Logger())
	sh.Arena = cards.NewArena()
	sh.Arbiter = rendering.NewArbiter(s.DirectRenderingLayers, sh.notifyDirect,
		log.With().Str("component", "rendering").Logger())
	sh.Manager = wm.NewManager(s, sh.Arena, sh.Arbiter, sh.out, log.With().Str("component", "wm").Logger())

	gestureLog := log.With().Str("component", "gesture").Logger()
	sh.bezel = gesture.NewBezelRecognizer(instanceBezel, sh.Mapper, s, gestureLog)
	sh.cardSwitch = gesture.NewCardSwitchRecognizer(instanceCardSwitch, sh.Mapper, s, gestureLog)
	sh.recognizers = []gesture.Recognizer{
		sh.bezel,
		sh.cardSwitch,
		gesture.NewPinchRecognizer(instancePinch),
		gesture.NewTapRecognizer(instanceTap, s),
	}

	sh.lastState = sh.Manager.State()
	sh.Manager.Tick(clock.Now())
	sh.sync()
	return sh
}

// Settings returns the snapshot the shell was built from
func (sh *Shell) Settings() *config.Settings {
	return sh.settings
}

// State returns the card manager state
func (sh *Shell) State() wm.State {
	return sh.Manager.State()
}

// Drain returns and clears every intent emitted since the last drain
func (sh *Shell) Drain() []intent.Intent {
	return sh.out.Drain()
}

func (sh *Shell) notifyDirect(w cards.WindowID, enabled bool) {
	in := intent.New(intent.DirectRendering).WithWindow(uint32(w))
	in.Enabled = enabled
	sh.out.Push(in)
}

// HandleScan applies one hardware scan batch. Meta band changes are
// delivered first as a meta key, then gesture keys, then recognized
// gestures, then the touch frame. It reports whether anything was
// consumed by the system UI.
func (sh *Shell) HandleScan(batch []touch.Sample) bool {
	now := sh.clock.Now()
	samples := make([]touch.Sample, len(batch))
	for i, s := range batch {
		if s.Timestamp.IsZero() {
			s.Timestamp = now
		}
		samples[i] = s
	}

	frame := sh.Assembler.Apply(samples)
	consumed := false

	if frame.MetaChanged {
		consumed = sh.dispatch(input.KeyEvent{Key: input.KeyMeta, Pressed: frame.Meta}) || consumed
	}
	for _, k := range frame.Keys {
		consumed = sh.dispatch(input.KeyEvent{Key: input.Key(k.Code), Pressed: k.Pressed}) || consumed
	}
	for _, r := range sh.recognizers {
		if ev, ok := r.Recognize(frame); ok {
			consumed = sh.dispatch(input.GestureEvent{Gesture: ev}) || consumed
		}
	}
	if len(frame.Points) > 0 {
		consumed = sh.dispatch(input.TouchEvent{Frame: frame}) || consumed
	}
	return consumed
}

// HandleKey delivers a hardware key transition
func (sh *Shell) HandleKey(k input.Key, pressed, autoRepeat bool) bool {
	return sh.dispatch(input.KeyEvent{Key: k, Pressed: pressed, AutoRepeat: autoRepeat})
}

// HandleOrientation delivers a device rotation
func (sh *Shell) HandleOrientation(o types.Orientation) bool {
	return sh.dispatch(input.OrientationEvent{Orientation: o})
}

// SetMode sets a router mode flag owned by an outside collaborator
func (sh *Shell) SetMode(f input.Mode, on bool) {
	sh.Router.SetMode(f, on)
	sh.sync()
}

// DockChanged enters or leaves dock mode
func (sh *Shell) DockChanged(on bool) {
	sh.Router.SetDockMode(on)
	sh.pump()
}

// CardAdded registers a launched application's card
func (sh *Shell) CardAdded(appID string) cards.WindowID {
	id := sh.Manager.AddCard(appID)
	sh.sync()
	return id
}

// ContentReady reports a card's first content
func (sh *Shell) ContentReady(id cards.WindowID) error {
	defer sh.sync()
	return sh.Manager.ContentReady(id)
}

// CardClosed reports a card's application exit
func (sh *Shell) CardClosed(id cards.WindowID) error {
	defer sh.sync()
	return sh.Manager.CloseCard(id)
}

// ModalLaunched shows a modal child over the maximized card
func (sh *Shell) ModalLaunched(appID string) (cards.WindowID, error) {
	defer sh.sync()
	return sh.Manager.LaunchModal(appID)
}

// ModalDismissed closes the newest modal child
func (sh *Shell) ModalDismissed(reason string) error {
	defer sh.sync()
	return sh.Manager.DismissModal(reason)
}

// FocusRequested asks for a card to take focus
func (sh *Shell) FocusRequested(id cards.WindowID) error {
	defer sh.sync()
	return sh.Manager.RequestFocus(id)
}

// FocusAcknowledged confirms a focus change
func (sh *Shell) FocusAcknowledged(id cards.WindowID) error {
	defer sh.sync()
	return sh.Manager.AcknowledgeFocus(id)
}

// Tick advances manager animations and timers
func (sh *Shell) Tick(now time.Time) bool {
	done := sh.Manager.Tick(now)
	sh.sync()
	return done
}

// dispatch routes one event and hands the resulting intents to the
// manager before the next event is routed
func (sh *Shell) dispatch(ev input.Event) bool {
	consumed := sh.Router.Dispatch(ev)
	sh.pump()
	return consumed
}

// pump forwards routed intents to the outbound queue and the manager
func (sh *Shell) pump() {
	for _, in := range sh.routed.Drain() {
		sh.out.Push(in)
		if in.Kind == intent.OrientationChanged {
			sh.Manager.SetScreen(sh.Mapper.CanonicalBounds())
		}
		sh.Manager.HandleIntent(in)
	}
	sh.sync()
}

// sync mirrors manager state into the router flags it gates on. Entering
// Maximize closes the dashboard, launcher and menu.
func (sh *Shell) sync() {
	if st := sh.Manager.State(); st != sh.lastState {
		if st == wm.Maximize {
			sh.Router.CloseOverlays()
		}
		sh.lastState = st
	}
	sh.Router.SetMode(input.CardMaximized, sh.Manager.Maximized())
	sh.Router.SetMode(input.ModalCardActive, sh.Manager.ModalActive())

	kbd := sh.Router.Has(input.KeyboardOpen)
	sh.bezel.SetKeyboardOpen(kbd)
	sh.cardSwitch.SetKeyboardOpen(kbd)
}
