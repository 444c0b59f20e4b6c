package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/types"
)

// VisualizationOptions controls the appearance of the deck drawing
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions sizes the drawing to the terminal
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		MaxWidth:   width,
		MaxHeight:  max(10, height-4),
	}
}

// DeckView is what the deck drawing needs from a shell
type DeckView struct {
	Screen   types.Rect
	State    string
	Snapshot cards.Snapshot
}

// VisualizeDeck draws the screen outline and every placed card at its
// current geometry. The active card is drawn last with a heavy outline.
func VisualizeDeck(view DeckView, opts VisualizationOptions) string {
	windows := drawOrder(view.Snapshot)

	header := fmt.Sprintf("State: %s  Cards: %d  Groups: %d\n",
		view.State, len(view.Snapshot.Windows), len(view.Snapshot.Groups))
	if len(windows) == 0 {
		return header + "(no cards)\n"
	}

	rects := make([]types.Rect, len(windows))
	for i, w := range windows {
		rects[i] = w.Geometry
	}
	sc := NewScaler(view.Screen, rects, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)

	sx, sy, sw, sh := sc.Clamp(sc.Rect(view.Screen))
	canvas.DrawBox(sx, sy, sw, sh, false)
	canvas.DrawTextCentered(sx, sy, sw, " screen ")

	for _, w := range windows {
		x, y, cw, ch := sc.Clamp(sc.Rect(w.Geometry))
		if cw < 3 || ch < 2 {
			continue
		}
		active := w.ID == view.Snapshot.ActiveWindow
		canvas.DrawBox(x, y, cw, ch, active)
		if ch > 2 {
			canvas.DrawTextCentered(x+1, y+1, cw-2, cardLabel(w, opts.ShowIDs))
		}
		if ch > 3 {
			if status := cardStatus(w); status != "" {
				canvas.DrawTextCentered(x+1, y+2, cw-2, status)
			}
		}
	}

	return header + canvas.String() + "\n"
}

// drawOrder returns the placed cards back to front: inactive cards by
// id, the active card, then modal children
func drawOrder(s cards.Snapshot) []cards.CardWindow {
	var back, front, modal []cards.CardWindow
	for _, w := range s.Windows {
		switch {
		case w.Geometry.Width <= 0 || w.Geometry.Height <= 0:
		case w.Parent != 0:
			modal = append(modal, w)
		case w.Group == 0:
		case w.ID == s.ActiveWindow:
			front = append(front, w)
		default:
			back = append(back, w)
		}
	}
	sort.Slice(back, func(i, j int) bool { return back[i].ID < back[j].ID })
	return append(append(back, front...), modal...)
}

func cardLabel(w cards.CardWindow, showID bool) string {
	name := w.AppID
	if name == "" {
		name = "unknown"
	}
	if showID {
		return fmt.Sprintf("[%d] %s", w.ID, name)
	}
	return name
}

func cardStatus(w cards.CardWindow) string {
	var parts []string
	if w.IsMaximized {
		parts = append(parts, "max")
	}
	if !w.Ready {
		parts = append(parts, "loading")
	}
	if w.Parent != 0 {
		parts = append(parts, fmt.Sprintf("modal of %d", w.Parent))
	}
	return strings.Join(parts, " ")
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks LANG and LC_ALL for a UTF-8 locale
func supportsUnicode() bool {
	return strings.Contains(os.Getenv("LANG"), "UTF-8") || strings.Contains(os.Getenv("LC_ALL"), "UTF-8")
}

// PrintDeck writes the deck drawing, colored unless color is disabled
func PrintDeck(w io.Writer, view DeckView, opts VisualizationOptions) {
	result := VisualizeDeck(view, opts)
	if color.NoColor {
		fmt.Fprint(w, result)
		return
	}
	color.New(color.FgCyan).Fprint(w, result)
}
