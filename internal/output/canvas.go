package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing card outlines
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// ASCIIStyle uses simple ASCII characters
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
	}

	// ASCIIActiveStyle marks the active card in ASCII mode
	ASCIIActiveStyle = BoxStyle{
		TopLeft:     '#',
		TopRight:    '#',
		BottomLeft:  '#',
		BottomRight: '#',
		Horizontal:  '=',
		Vertical:    '#',
	}

	// UnicodeStyle uses light box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
	}

	// UnicodeActiveStyle uses double box drawing characters
	UnicodeActiveStyle = BoxStyle{
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
		Horizontal:  '═',
		Vertical:    '║',
	}
)

// Canvas is a 2D character buffer
type Canvas struct {
	Width   int
	Height  int
	buffer  [][]rune
	unicode bool
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = []rune(strings.Repeat(" ", width))
	}
	return &Canvas{
		Width:   width,
		Height:  height,
		buffer:  buffer,
		unicode: useUnicode,
	}
}

func (c *Canvas) style(active bool) BoxStyle {
	switch {
	case c.unicode && active:
		return UnicodeActiveStyle
	case c.unicode:
		return UnicodeStyle
	case active:
		return ASCIIActiveStyle
	default:
		return ASCIIStyle
	}
}

// SetCell sets a character, ignoring positions off the canvas
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.buffer[y][x] = r
	}
}

// Cell returns the character at a position
func (c *Canvas) Cell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.buffer[y][x]
	}
	return ' '
}

// DrawBox outlines a box. The interior is cleared so later boxes hide
// the ones drawn before them.
func (c *Canvas) DrawBox(x, y, width, height int, active bool) {
	if width < 2 || height < 2 {
		return
	}
	st := c.style(active)

	for dy := 1; dy < height-1; dy++ {
		for dx := 1; dx < width-1; dx++ {
			c.SetCell(x+dx, y+dy, ' ')
		}
	}

	c.SetCell(x, y, st.TopLeft)
	c.SetCell(x+width-1, y, st.TopRight)
	c.SetCell(x, y+height-1, st.BottomLeft)
	c.SetCell(x+width-1, y+height-1, st.BottomRight)
	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, st.Horizontal)
		c.SetCell(x+i, y+height-1, st.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, st.Vertical)
		c.SetCell(x+width-1, y+i, st.Vertical)
	}
}

// DrawText writes text starting at a position
func (c *Canvas) DrawText(x, y int, text string) {
	for i, r := range []rune(text) {
		c.SetCell(x+i, y, r)
	}
}

// DrawTextCentered writes text centered within width, truncating it
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) >= width {
		c.DrawText(x, y, string(runes[:max(0, width)]))
		return
	}
	c.DrawText(x+(width-len(runes))/2, y, text)
}

// String renders the canvas with trailing spaces trimmed
func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.buffer {
		sb.WriteString(strings.TrimRight(string(row), " "))
		if i < len(c.buffer)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
