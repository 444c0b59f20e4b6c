package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/cardshell/internal/cards"
	"github.com/yourusername/cardshell/internal/intent"
)

// PrintIntentsTable prints intents in emission order
func PrintIntentsTable(w io.Writer, intents []intent.Intent) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Kind", "Window", "Detail", "ID")

	for i, in := range intents {
		window := "-"
		if in.Window != 0 {
			window = fmt.Sprintf("%d", in.Window)
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			in.Kind.String(),
			window,
			intentDetail(in),
			truncate(in.ID, 8),
		)
	}

	table.Render()
}

// intentDetail summarizes the kind-specific fields
func intentDetail(in intent.Intent) string {
	switch in.Kind {
	case intent.SwitchCard, intent.ChangeCardWindow:
		return in.Direction.String()
	case intent.SwitchGesture:
		return fmt.Sprintf("%s %s %.1f", in.Phase, in.Direction, in.Value)
	case intent.MinimizeGesture, intent.SpreadGesture:
		return fmt.Sprintf("%s %.2f", in.Phase, in.Value)
	case intent.SpreadOpen:
		return fmt.Sprintf("scale %.2f", in.Value)
	case intent.TapCard, intent.PointerPress, intent.PointerMove, intent.PointerRelease:
		return fmt.Sprintf("(%.0f, %.0f)", in.Pos.X, in.Pos.Y)
	case intent.OrientationChanged:
		return in.Orientation.String()
	case intent.StateChanged:
		return in.Name
	case intent.DirectRendering:
		if in.Enabled {
			return "on"
		}
		return "off"
	case intent.ScenePrepare, intent.SceneRun, intent.SceneCancel, intent.SceneFinished:
		parts := []string{truncate(in.Scene, 8)}
		if in.Name != "" {
			parts = append(parts, in.Name)
		}
		return strings.Join(parts, " ")
	case intent.CloseDashboard:
		if in.Force {
			return "force"
		}
	}
	return ""
}

// PrintCardsTable prints every card of a snapshot
func PrintCardsTable(w io.Writer, s cards.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "App", "Group", "Tab", "Geometry", "Orientation", "State")

	position := make(map[cards.WindowID]string)
	for gi, g := range s.Groups {
		for ti, wid := range g.Windows {
			tab := fmt.Sprintf("%d/%d", ti+1, len(g.Windows))
			if ti == g.Active {
				tab += "*"
			}
			position[wid] = fmt.Sprintf("%d:%s", gi+1, tab)
		}
	}

	for _, win := range s.Windows {
		group, tab := "-", "-"
		if p, ok := position[win.ID]; ok {
			group, tab, _ = strings.Cut(p, ":")
		}

		var flags []string
		if win.ID == s.ActiveWindow {
			flags = append(flags, "active")
		}
		if win.IsMaximized {
			flags = append(flags, "max")
		}
		if !win.Ready {
			flags = append(flags, "loading")
		}
		if win.Parent != 0 {
			flags = append(flags, fmt.Sprintf("modal:%d", win.Parent))
		}

		g := win.Geometry
		table.Append(
			fmt.Sprintf("%d", win.ID),
			truncate(win.AppID, 25),
			group,
			tab,
			fmt.Sprintf("%.0f,%.0f %.0fx%.0f", g.X, g.Y, g.Width, g.Height),
			win.Orientation.String(),
			strings.Join(flags, " "),
		)
	}

	table.Render()
}

// PrintSettingsTable prints a flat settings map sorted by key
func PrintSettingsTable(w io.Writer, settings map[string]interface{}) {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value")

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		table.Append(k, fmt.Sprintf("%v", settings[k]))
	}

	table.Render()
}

// PrintNames prints one name per line
func PrintNames(w io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// PrintFailures prints expectation failures in red
func PrintFailures(w io.Writer, failures []string) {
	red := color.New(color.FgRed)
	for _, f := range failures {
		red.Fprint(w, "✗ ")
		fmt.Fprintln(w, f)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
