package gesture

import "math"

// FlickClassifier turns frame-to-frame deltas into a flick value of -1, 0
// or +1. Deltas between the dead zone and the minimum, or above the
// maximum, keep the previous value.
type FlickClassifier struct {
	Min      float64
	Max      float64
	DeadZone float64

	value int
}

// NewFlickClassifier creates a classifier with the given thresholds
func NewFlickClassifier(min, max, deadZone float64) FlickClassifier {
	return FlickClassifier{Min: min, Max: max, DeadZone: deadZone}
}

// Classify applies one frame delta and returns the resulting flick value
func (c *FlickClassifier) Classify(delta float64) int {
	ad := math.Abs(delta)
	switch {
	case ad < c.DeadZone:
		c.value = 0
	case ad >= c.Min && ad <= c.Max:
		if delta > 0 {
			c.value = 1
		} else {
			c.value = -1
		}
	}
	return c.value
}

// Value returns the current flick value
func (c *FlickClassifier) Value() int {
	return c.value
}

// Reset clears the flick value
func (c *FlickClassifier) Reset() {
	c.value = 0
}
