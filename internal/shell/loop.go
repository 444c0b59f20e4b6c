package shell

import (
	"context"
	"time"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/input"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/touch"
	"github.com/yourusername/cardshell/internal/types"
)

// Input is one item fed to Run
type Input interface {
	apply(sh *Shell)
}

// ScanInput is one hardware touch scan
type ScanInput struct {
	Samples []touch.Sample
}

// KeyInput is a hardware key transition
type KeyInput struct {
	Key        input.Key
	Pressed    bool
	AutoRepeat bool
}

// OrientationInput is a device rotation
type OrientationInput struct {
	Orientation types.Orientation
}

// LifecycleInput is an application lifecycle notification
type LifecycleInput struct {
	Kind   LifecycleKind
	AppID  string
	Window cards.WindowID
	Reason string
	On     bool // dock state for LifecycleDock
}

// LifecycleKind selects the lifecycle notification
type LifecycleKind int

const (
	LifecycleAdded LifecycleKind = iota
	LifecycleReady
	LifecycleClosed
	LifecycleModal
	LifecycleDismiss
	LifecycleFocus
	LifecycleAck
	LifecycleDock
)

func (in ScanInput) apply(sh *Shell)        { sh.HandleScan(in.Samples) }
func (in KeyInput) apply(sh *Shell)         { sh.HandleKey(in.Key, in.Pressed, in.AutoRepeat) }
func (in OrientationInput) apply(sh *Shell) { sh.HandleOrientation(in.Orientation) }

func (in LifecycleInput) apply(sh *Shell) {
	var err error
	switch in.Kind {
	case LifecycleAdded:
		sh.CardAdded(in.AppID)
	case LifecycleReady:
		err = sh.ContentReady(in.Window)
	case LifecycleClosed:
		err = sh.CardClosed(in.Window)
	case LifecycleModal:
		_, err = sh.ModalLaunched(in.AppID)
	case LifecycleDismiss:
		err = sh.ModalDismissed(in.Reason)
	case LifecycleFocus:
		err = sh.FocusRequested(in.Window)
	case LifecycleAck:
		err = sh.FocusAcknowledged(in.Window)
	case LifecycleDock:
		sh.DockChanged(in.On)
	}
	if err != nil {
		sh.log.Warn().Err(err).Int("kind", int(in.Kind)).Msg("lifecycle notification rejected")
	}
}

// Run executes the event loop until ctx is canceled or inputs is closed.
// Intents produced by each input or animation tick are handed to sink
// in emission order. Run blocks and must be the only caller of the shell.
func (sh *Shell) Run(ctx context.Context, inputs <-chan Input, sink func([]intent.Intent)) error {
	interval := time.Duration(sh.settings.AnimationTickMs) * time.Millisecond
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sh.log.Info().Dur("tick", interval).Msg("shell loop started")

	for {
		select {
		case <-ctx.Done():
			sh.flush(sink)
			sh.log.Info().Msg("shell loop stopped")
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				sh.flush(sink)
				sh.log.Info().Msg("shell inputs closed")
				return nil
			}
			in.apply(sh)
		case <-ticker.C:
			sh.Tick(sh.clock.Now())
		}
		sh.flush(sink)
	}
}

func (sh *Shell) flush(sink func([]intent.Intent)) {
	if out := sh.Drain(); len(out) > 0 && sink != nil {
		sink(out)
	}
}
