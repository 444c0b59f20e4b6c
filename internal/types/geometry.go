package types

import "math"

// Rect represents pixel bounds on screen
type Rect struct {
	X      float64 // Left edge (pixels from screen left)
	Y      float64 // Top edge (pixels from screen top)
	Width  float64 // Width in pixels
	Height float64 // Height in pixels
}

// Point represents a 2D coordinate
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Dist returns the euclidean distance between two points
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	top := max(r.Y, other.Y)
	bottom := min(r.Y+r.Height, other.Y+other.Height)

	if left >= right || top >= bottom {
		return 0
	}
	return (right - left) * (bottom - top)
}

// Scale returns the rect scaled by f around its center
func (r Rect) Scale(f float64) Rect {
	c := r.Center()
	w, h := r.Width*f, r.Height*f
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Translate returns the rect moved by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Lerp interpolates every edge of r towards to by t in [0,1]
func (r Rect) Lerp(to Rect, t float64) Rect {
	return Rect{
		X:      r.X + (to.X-r.X)*t,
		Y:      r.Y + (to.Y-r.Y)*t,
		Width:  r.Width + (to.Width-r.Width)*t,
		Height: r.Height + (to.Height-r.Height)*t,
	}
}
