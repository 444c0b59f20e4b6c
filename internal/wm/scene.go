package wm

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/cardshell/internal/intent"
)

// launchScene is the transition run when a new card finishes loading
const launchScene = "card-launch"

// scene is a prepared or running cross-app scene transition
type scene struct {
	id      string
	name    string
	isPop   bool
	origin  State // restored on cancel
	target  State // entered on finish
	running bool
	anim    Animation
}

// SceneTransitionActive reports whether a scene transition is prepared
// or running. The direct rendering arbiter defers requests while true.
func (m *Manager) SceneTransitionActive() bool {
	return m.scene != nil
}

// PrepareSceneTransition records the current state and enters Preparing.
// A second prepare before run or cancel is rejected and leaves the state
// set by the first.
func (m *Manager) PrepareSceneTransition() error {
	if m.scene != nil {
		m.log.Error().
			Str("scene", m.scene.id).
			Str("state", m.state.String()).
			Msg("scene transition already pending, prepare rejected")
		return ErrTransitionPending
	}
	m.Handle(Event{Kind: EvScenePrepare, Time: m.now})
	return nil
}

// RunSceneTransition starts the prepared transition. Running without a
// prepare cancels the request and recovers to Maximize or Minimize.
func (m *Manager) RunSceneTransition(name string, isPop bool) error {
	if m.scene != nil && m.scene.running {
		m.log.Error().
			Str("scene", m.scene.id).
			Str("transition", name).
			Msg("scene transition already running, run rejected")
		return ErrTransitionPending
	}
	if m.scene == nil {
		m.log.Error().
			Str("transition", name).
			Str("state", m.state.String()).
			Msg("run without prepared scene transition")
		in := intent.New(intent.SceneCancel)
		in.Name = name
		m.emit(in)
		m.recoverState()
		return ErrNoPreparedTransition
	}
	m.runScene(name, isPop)
	return nil
}

// CancelSceneTransition abandons the pending transition and returns to
// the state recorded by prepare
func (m *Manager) CancelSceneTransition() error {
	if m.scene == nil {
		m.log.Warn().Msg("cancel without prepared scene transition")
		return ErrNoPreparedTransition
	}
	origin := m.scene.origin
	m.abortScene("canceled")
	if origin == Maximize && m.arena.ActiveWindow() == 0 {
		origin = Minimize
	}
	m.transitionTo(origin)
	return nil
}

// FinishSceneTransition completes the running transition ahead of its
// animation
func (m *Manager) FinishSceneTransition() error {
	if m.scene == nil || !m.scene.running {
		m.log.Warn().Msg("finish without running scene transition")
		return ErrNoPreparedTransition
	}
	m.finishScene()
	return nil
}

func (m *Manager) beginScene(target State) {
	m.scene = &scene{
		id:     uuid.New().String(),
		origin: m.state,
		target: target,
	}
	in := intent.New(intent.ScenePrepare)
	in.Scene = m.scene.id
	m.emit(in)
}

func (m *Manager) runScene(name string, isPop bool) {
	s := m.scene
	s.name = name
	s.isPop = isPop
	s.running = true
	s.anim = Animation{
		Start:    m.now,
		Duration: time.Duration(m.settings.SceneTransitionMs) * time.Millisecond,
	}

	in := intent.New(intent.SceneRun)
	in.Scene = s.id
	in.Name = name
	m.emit(in)
}

// abortScene drops the pending transition and replays deferred direct
// rendering requests
func (m *Manager) abortScene(reason string) {
	s := m.scene
	m.scene = nil
	m.pending = 0
	m.placement = nil

	in := intent.New(intent.SceneCancel)
	in.Scene = s.id
	in.Name = s.name
	m.emit(in)
	m.log.Debug().Str("scene", s.id).Str("reason", reason).Msg("scene transition canceled")
	m.arbiter.Resume()
}

func (m *Manager) finishScene() {
	s := m.scene
	m.scene = nil
	m.pending = 0
	m.placement = nil

	in := intent.New(intent.SceneFinished)
	in.Scene = s.id
	in.Name = s.name
	m.emit(in)
	m.arbiter.Resume()

	target := s.target
	if target == Maximize && m.arena.ActiveWindow() == 0 {
		target = Minimize
	}
	m.transitionTo(target)

	if w := m.deferredFocus; w != 0 {
		m.deferredFocus = 0
		m.Handle(Event{Kind: EvFocusRequest, Window: w, Time: m.now})
	}
}

// recoverState forces a known-good terminal state
func (m *Manager) recoverState() {
	target := Minimize
	if m.Maximized() && m.arena.ActiveWindow() != 0 {
		target = Maximize
	}
	if target != m.state {
		m.transitionTo(target)
	}
}

// prepareScene is the effect of an explicit prepare
func prepareScene(m *Manager, _ Event) {
	target := m.state
	if target.transient() {
		target = m.origin
	}
	m.beginScene(target)
}
