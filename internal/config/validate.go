package config

import "fmt"

// Validate checks the settings for errors
func (s *Settings) Validate() error {
	if s.GestureDetectionMode < DetectFlick || s.GestureDetectionMode > DetectFluid {
		return fmt.Errorf("gestureDetectionMode must be 0 (flick), 1 (slide) or 2 (fluid), got %d", s.GestureDetectionMode)
	}

	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %vx%v", s.ScreenWidth, s.ScreenHeight)
	}

	if s.GestureBorderSize <= 0 {
		return fmt.Errorf("gestureBorderSize must be positive")
	}
	if s.GestureBorderSize*2 >= s.ScreenWidth || s.GestureBorderSize*2 >= s.ScreenHeight {
		return fmt.Errorf("gestureBorderSize %v leaves no screen interior", s.GestureBorderSize)
	}
	if s.GestureTriggerDistance <= 0 {
		return fmt.Errorf("gestureTriggerDistance must be positive")
	}
	if s.GestureTriggerDistanceKeyboard < s.GestureTriggerDistance {
		return fmt.Errorf("gestureTriggerDistanceKeyboard (%v) must not be below gestureTriggerDistance (%v)",
			s.GestureTriggerDistanceKeyboard, s.GestureTriggerDistance)
	}

	if err := validateFlick(s); err != nil {
		return fmt.Errorf("flick: %w", err)
	}

	if s.MetaBandHeight < 0 {
		return fmt.Errorf("metaBandHeight cannot be negative")
	}
	if s.TapSlop < 0 || s.DragSlop < 0 {
		return fmt.Errorf("slop values cannot be negative")
	}
	if s.PinchThreshold <= 0 || s.PinchThreshold >= 1 {
		return fmt.Errorf("pinchThreshold must be in (0, 1), got %v", s.PinchThreshold)
	}

	for name, ms := range map[string]int{
		"tapMaxDurationMs":  s.TapMaxDurationMs,
		"reorderHoldMs":     s.ReorderHoldMs,
		"sceneTransitionMs": s.SceneTransitionMs,
		"placementMs":       s.PlacementMs,
		"focusTimeoutMs":    s.FocusTimeoutMs,
		"animationTickMs":   s.AnimationTickMs,
	} {
		if ms <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, ms)
		}
	}

	for name, f := range map[string]float64{
		"switchCommitFraction":   s.SwitchCommitFraction,
		"minimizeCommitFraction": s.MinimizeCommitFraction,
		"cardScale":              s.CardScale,
	} {
		if f <= 0 || f >= 1 {
			return fmt.Errorf("%s must be in (0, 1), got %v", name, f)
		}
	}

	if s.CardSpacing < 0 || s.GroupJoinRadius < 0 {
		return fmt.Errorf("card spacing and group join radius cannot be negative")
	}

	if s.DirectRenderingLayers < 1 {
		return fmt.Errorf("directRenderingLayers must be at least 1, got %d", s.DirectRenderingLayers)
	}

	return nil
}

func validateFlick(s *Settings) error {
	if s.FlickDeadZone < 0 {
		return fmt.Errorf("dead zone cannot be negative")
	}
	if s.FlickMinDelta <= s.FlickDeadZone {
		return fmt.Errorf("min delta (%v) must exceed dead zone (%v)", s.FlickMinDelta, s.FlickDeadZone)
	}
	if s.FlickMaxDelta < s.FlickMinDelta {
		return fmt.Errorf("max delta (%v) must not be below min delta (%v)", s.FlickMaxDelta, s.FlickMinDelta)
	}
	return nil
}
