package replay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/shell"
	"github.com/yourusername/cardshell/internal/wm"
)

// ErrUnknownApp is returned when a card step names an app with no card
var ErrUnknownApp = errors.New("no card for app")

// Epoch is the replay clock's start time
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// clock is the scripted time source; it only moves on tick steps
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

// Failure is an expectation that did not hold
type Failure struct {
	Step    int
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d: %s", f.Step, f.Message)
}

// Result is the outcome of a replay
type Result struct {
	Intents  []intent.Intent
	State    wm.State
	Failures []Failure
}

// Passed reports whether every expectation held
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner drives one script against a fresh shell
type Runner struct {
	Shell *shell.Shell

	script  *Script
	clock   *clock
	windows map[string]cards.WindowID
	intents []intent.Intent
	mark    int // first intent not yet checked by an expectation
	log     zerolog.Logger
}

// NewRunner builds a shell from the script's settings
func NewRunner(s *Script, log zerolog.Logger) (*Runner, error) {
	settings, err := s.settings()
	if err != nil {
		return nil, err
	}
	c := &clock{now: Epoch}
	return &Runner{
		Shell:   shell.New(settings, log, c),
		script:  s,
		clock:   c,
		windows: make(map[string]cards.WindowID),
		log:     log,
	}, nil
}

// Run replays the script. Expectation failures are collected in the
// result; an error stops the replay.
func Run(s *Script, log zerolog.Logger) (*Result, *Runner, error) {
	r, err := NewRunner(s, log)
	if err != nil {
		return nil, nil, err
	}
	res, err := r.Run()
	return res, r, err
}

// Run executes every step in order
func (r *Runner) Run() (*Result, error) {
	res := &Result{}
	r.collect()

	for _, o := range r.script.ops {
		if o.apply != nil {
			if err := o.apply(r); err != nil {
				return nil, fmt.Errorf("step %d: %w", o.index+1, err)
			}
		}
		r.collect()
		if o.expect != nil {
			for _, msg := range r.check(o.expect) {
				res.Failures = append(res.Failures, Failure{Step: o.index + 1, Message: msg})
			}
			r.mark = len(r.intents)
		}
	}

	res.Intents = r.intents
	res.State = r.Shell.State()
	r.log.Debug().
		Int("steps", len(r.script.ops)).
		Int("intents", len(res.Intents)).
		Int("failures", len(res.Failures)).
		Msg("replay finished")
	return res, nil
}

// Window returns the newest card id for app
func (r *Runner) Window(app string) (cards.WindowID, bool) {
	id, ok := r.windows[app]
	return id, ok
}

func (r *Runner) collect() {
	r.intents = append(r.intents, r.Shell.Drain()...)
}

func (r *Runner) advance(d time.Duration) {
	r.clock.now = r.clock.now.Add(d)
	r.Shell.Tick(r.clock.now)
}

func (r *Runner) window(app string) (cards.WindowID, error) {
	id, ok := r.windows[app]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownApp, app)
	}
	return id, nil
}

func (r *Runner) card(c CardStep) error {
	switch c.Action {
	case CardAdded:
		r.windows[c.App] = r.Shell.CardAdded(c.App)
		return nil
	case CardModal:
		id, err := r.Shell.ModalLaunched(c.App)
		if err != nil {
			return err
		}
		r.windows[c.App] = id
		return nil
	case CardDismiss:
		return r.Shell.ModalDismissed(c.Reason)
	case CardDock:
		r.Shell.DockChanged(c.On)
		return nil
	}

	id, err := r.window(c.App)
	if err != nil {
		return err
	}
	switch c.Action {
	case CardReady:
		return r.Shell.ContentReady(id)
	case CardClosed:
		err = r.Shell.CardClosed(id)
		delete(r.windows, c.App)
		return err
	case CardFocus:
		return r.Shell.FocusRequested(id)
	case CardAck:
		return r.Shell.FocusAcknowledged(id)
	}
	return nil
}

// check returns one message per unmet expectation
func (r *Runner) check(e *expectation) []string {
	var msgs []string
	window := r.intents[r.mark:]

	if missing, ok := subsequence(window, e.intents); !ok {
		msgs = append(msgs, fmt.Sprintf("intent %s not emitted in order, got [%s]", missing, kindList(window)))
	}
	for _, k := range e.absent {
		for _, in := range window {
			if in.Kind == k {
				msgs = append(msgs, fmt.Sprintf("intent %s emitted", k))
				break
			}
		}
	}
	if e.state != nil && r.Shell.State() != *e.state {
		msgs = append(msgs, fmt.Sprintf("state = %s, want %s", r.Shell.State(), *e.state))
	}
	if e.active != "" {
		want, ok := r.windows[e.active]
		if got := r.Shell.Arena.ActiveWindow(); !ok || got != want {
			msgs = append(msgs, fmt.Sprintf("active card = %d, want %s", got, e.active))
		}
	}
	return msgs
}

// subsequence reports whether want appears in order within got, and the
// first kind that did not
func subsequence(got []intent.Intent, want []intent.Kind) (intent.Kind, bool) {
	i := 0
	for _, in := range got {
		if i < len(want) && in.Kind == want[i] {
			i++
		}
	}
	if i < len(want) {
		return want[i], false
	}
	return intent.None, true
}

func kindList(ins []intent.Intent) string {
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.Kind.String()
	}
	return strings.Join(names, " ")
}
