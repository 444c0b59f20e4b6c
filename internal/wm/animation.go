package wm

import (
	"time"

	"github.com/yourusername/cardshell/internal/types"
)

// Animation interpolates a rect over a fixed duration
type Animation struct {
	From     types.Rect
	To       types.Rect
	Start    time.Time
	Duration time.Duration
}

// Progress returns the eased completion in [0,1] at now
func (a Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(a.Start)) / float64(a.Duration)
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return easeOut(t)
}

// At returns the interpolated rect at now
func (a Animation) At(now time.Time) types.Rect {
	return a.From.Lerp(a.To, a.Progress(now))
}

// Done reports whether the animation has completed at now
func (a Animation) Done(now time.Time) bool {
	return !now.Before(a.Start.Add(a.Duration))
}

// easeOut is a quadratic ease-out curve
func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
