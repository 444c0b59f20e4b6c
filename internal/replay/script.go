// Package replay runs YAML input scripts against a shell and checks the
// intents and states they produce.
package replay

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/input"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/suggest"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
	"github.com/yourusername/cardshell/internal/wm"
)

// Script is a parsed replay file
type Script struct {
	Name     string                 `yaml:"name"`
	Settings map[string]interface{} `yaml:"settings"`
	Steps    []Step                 `yaml:"steps"`

	ops []op
}

// Step is one scripted action, optionally followed by an expectation
type Step struct {
	Key         *KeyStep        `yaml:"key,omitempty"`
	Touch       []TouchSample   `yaml:"touch,omitempty"`
	Orientation string          `yaml:"orientation,omitempty"`
	Card        *CardStep       `yaml:"card,omitempty"`
	Mode        map[string]bool `yaml:"mode,omitempty"`
	Tick        string          `yaml:"tick,omitempty"`
	Expect      *Expect         `yaml:"expect,omitempty"`
}

// KeyStep is a hardware key. Action is press, release or tap (default).
// Repeat marks the release as auto-repeated.
type KeyStep struct {
	Name   string `yaml:"name"`
	Action string `yaml:"action,omitempty"`
	Repeat bool   `yaml:"repeat,omitempty"`
}

// TouchSample is one finger of a scan. A non-empty Key makes it a
// gesture-area key sample.
type TouchSample struct {
	Finger int     `yaml:"finger"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	State  string  `yaml:"state"`
	Key    string  `yaml:"key,omitempty"`
}

// CardStep is an application lifecycle notification. Cards are referred
// to by app id; the newest card of an app wins.
type CardStep struct {
	Action string `yaml:"action"`
	App    string `yaml:"app,omitempty"`
	Reason string `yaml:"reason,omitempty"`
	On     bool   `yaml:"on,omitempty"`
}

// Expect checks the run after a step. Intents must appear in order among
// the intents emitted since the previous expectation; Absent must not
// appear there at all.
type Expect struct {
	Intents []string `yaml:"intents,omitempty"`
	Absent  []string `yaml:"absent,omitempty"`
	State   string   `yaml:"state,omitempty"`
	Active  string   `yaml:"active,omitempty"`
}

// Card actions
const (
	CardAdded   = "added"
	CardReady   = "ready"
	CardClosed  = "closed"
	CardModal   = "modal"
	CardDismiss = "dismiss"
	CardFocus   = "focus"
	CardAck     = "ack"
	CardDock    = "dock"
)

var cardActions = []string{CardAdded, CardReady, CardClosed, CardModal, CardDismiss, CardFocus, CardAck, CardDock}

var orientationNames = []string{"up", "down", "left", "right"}

// op is a compiled step
type op struct {
	index  int
	apply  func(r *Runner) error
	expect *expectation
}

type expectation struct {
	intents []intent.Kind
	absent  []intent.Kind
	state   *wm.State
	active  string
}

// Load reads and compiles a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and compiles a script. Unknown names fail here, before
// anything runs.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if _, err := s.settings(); err != nil {
		return nil, err
	}

	s.ops = make([]op, 0, len(s.Steps))
	for i, st := range s.Steps {
		o, err := compile(i, st)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		s.ops = append(s.ops, o)
	}
	return &s, nil
}

// Layer puts base settings under the script's own. Script keys win,
// compared case insensitively.
func (s *Script) Layer(base map[string]interface{}) {
	merged := make(map[string]interface{}, len(base)+len(s.Settings))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range s.Settings {
		for bk := range base {
			if strings.EqualFold(bk, k) {
				delete(merged, bk)
			}
		}
		merged[k] = v
	}
	s.Settings = merged
}

func (s *Script) settings() (*config.Settings, error) {
	if err := config.CheckKeys(s.Settings); err != nil {
		return nil, err
	}
	return config.FromSnapshot(s.Settings)
}

func compile(i int, st Step) (op, error) {
	o := op{index: i}
	actions := 0

	if st.Key != nil {
		actions++
		apply, err := compileKey(*st.Key)
		if err != nil {
			return o, err
		}
		o.apply = apply
	}
	if len(st.Touch) > 0 {
		actions++
		apply, err := compileTouch(st.Touch)
		if err != nil {
			return o, err
		}
		o.apply = apply
	}
	if st.Orientation != "" {
		actions++
		or, err := parseOrientation(st.Orientation)
		if err != nil {
			return o, err
		}
		o.apply = func(r *Runner) error {
			r.Shell.HandleOrientation(or)
			return nil
		}
	}
	if st.Card != nil {
		actions++
		apply, err := compileCard(*st.Card)
		if err != nil {
			return o, err
		}
		o.apply = apply
	}
	if len(st.Mode) > 0 {
		actions++
		apply, err := compileMode(st.Mode)
		if err != nil {
			return o, err
		}
		o.apply = apply
	}
	if st.Tick != "" {
		actions++
		d, err := time.ParseDuration(st.Tick)
		if err != nil {
			return o, fmt.Errorf("invalid tick %q: %w", st.Tick, err)
		}
		o.apply = func(r *Runner) error {
			r.advance(d)
			return nil
		}
	}

	if actions > 1 {
		return o, fmt.Errorf("%d actions in one step", actions)
	}
	if actions == 0 && st.Expect == nil {
		return o, fmt.Errorf("empty step")
	}

	if st.Expect != nil {
		e, err := compileExpect(*st.Expect)
		if err != nil {
			return o, err
		}
		o.expect = e
	}
	return o, nil
}

func compileKey(k KeyStep) (func(r *Runner) error, error) {
	key, err := input.ParseKey(k.Name)
	if err != nil {
		return nil, err
	}
	switch k.Action {
	case "press":
		return func(r *Runner) error {
			r.Shell.HandleKey(key, true, false)
			return nil
		}, nil
	case "release":
		return func(r *Runner) error {
			r.Shell.HandleKey(key, false, k.Repeat)
			return nil
		}, nil
	case "", "tap":
		return func(r *Runner) error {
			r.Shell.HandleKey(key, true, false)
			r.Shell.HandleKey(key, false, k.Repeat)
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown key action %q", k.Action)
	}
}

func compileTouch(in []TouchSample) (func(r *Runner) error, error) {
	batch := make([]touch.Sample, 0, len(in))
	for _, ts := range in {
		st, ok := touch.ParseSampleState(ts.State)
		if !ok {
			return nil, unknown("touch state", ts.State, []string{"down", "move", "up"})
		}
		s := touch.Sample{FingerID: ts.Finger, X: ts.X, Y: ts.Y, State: st}
		if ts.Key != "" {
			key, err := input.ParseKey(ts.Key)
			if err != nil {
				return nil, err
			}
			s.GestureKey = int(key)
		}
		batch = append(batch, s)
	}
	return func(r *Runner) error {
		r.Shell.HandleScan(batch)
		return nil
	}, nil
}

func compileCard(c CardStep) (func(r *Runner) error, error) {
	switch c.Action {
	case CardAdded, CardReady, CardClosed, CardModal, CardFocus, CardAck:
		if c.App == "" {
			return nil, fmt.Errorf("card %s needs an app", c.Action)
		}
	case CardDismiss, CardDock:
	default:
		return nil, unknown("card action", c.Action, cardActions)
	}
	return func(r *Runner) error { return r.card(c) }, nil
}

func compileMode(flags map[string]bool) (func(r *Runner) error, error) {
	type set struct {
		flag input.Mode
		on   bool
	}
	sets := make([]set, 0, len(flags))
	for name, on := range flags {
		f, err := input.ParseMode(name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set{flag: f, on: on})
	}
	return func(r *Runner) error {
		for _, s := range sets {
			r.Shell.SetMode(s.flag, s.on)
		}
		return nil
	}, nil
}

func compileExpect(e Expect) (*expectation, error) {
	out := &expectation{active: e.Active}
	var err error
	if out.intents, err = parseKinds(e.Intents); err != nil {
		return nil, err
	}
	if out.absent, err = parseKinds(e.Absent); err != nil {
		return nil, err
	}
	if e.State != "" {
		st, err := wm.ParseState(e.State)
		if err != nil {
			return nil, err
		}
		out.state = &st
	}
	return out, nil
}

func parseKinds(names []string) ([]intent.Kind, error) {
	kinds := make([]intent.Kind, 0, len(names))
	for _, n := range names {
		k, ok := intent.ParseKind(n)
		if !ok {
			return nil, unknown("intent", n, intent.KindNames())
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func parseOrientation(s string) (types.Orientation, error) {
	if o, ok := types.ParseOrientation(s); ok {
		return o, nil
	}
	return 0, unknown("orientation", s, orientationNames)
}

func unknown(what, name string, candidates []string) error {
	if match, ok := suggest.Closest(name, candidates); ok {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", what, name, match)
	}
	return fmt.Errorf("unknown %s %q", what, name)
}
