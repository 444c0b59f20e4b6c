package output

import (
	"math"

	"github.com/yourusername/cardshell/internal/types"
)

// charAspect is the height:width ratio of a terminal character cell
const charAspect = 2.0

// Scaler maps canonical screen pixels onto terminal character cells
type Scaler struct {
	// Pixel area shown
	MinX, MinY float64
	MaxX, MaxY float64

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	scale float64 // characters per pixel, horizontal
}

// NewScaler fits the screen and every card rect into the terminal. Cards
// off to the sides of the deck widen the area shown.
func NewScaler(screen types.Rect, rects []types.Rect, termWidth, termHeight int) *Scaler {
	minX, minY := screen.X, screen.Y
	maxX, maxY := screen.X+screen.Width, screen.Y+screen.Height
	for _, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.Width)
		maxY = math.Max(maxY, r.Y+r.Height)
	}

	// 2% padding
	padX := (maxX - minX) * 0.02
	padY := (maxY - minY) * 0.02
	minX, maxX = minX-padX, maxX+padX
	minY, maxY = minY-padY, maxY+padY

	// Reserve a border of 2 columns and 1 row on each side
	availWidth := max(10, termWidth-4)
	availHeight := max(5, termHeight-2)

	scale := math.Min(
		float64(availWidth)/(maxX-minX),
		float64(availHeight)*charAspect/(maxY-minY),
	)

	return &Scaler{
		MinX:       minX,
		MinY:       minY,
		MaxX:       maxX,
		MaxY:       maxY,
		TermWidth:  termWidth,
		TermHeight: termHeight,
		scale:      scale,
	}
}

// Point converts a pixel position to a terminal cell
func (sc *Scaler) Point(x, y float64) (int, int) {
	col := int(math.Round((x-sc.MinX)*sc.scale)) + 2
	row := int(math.Round((y-sc.MinY)*sc.scale/charAspect)) + 1
	return col, row
}

// Rect converts a pixel rect to a cell box at least 3x2
func (sc *Scaler) Rect(r types.Rect) (x, y, w, h int) {
	x, y = sc.Point(r.X, r.Y)
	x2, y2 := sc.Point(r.X+r.Width, r.Y+r.Height)
	return x, y, max(3, x2-x), max(2, y2-y)
}

// Clamp keeps a box inside the terminal
func (sc *Scaler) Clamp(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}
	return x, y, w, h
}
