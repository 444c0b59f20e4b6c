package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/logging"
	"github.com/yourusername/cardshell/internal/output"
	"github.com/yourusername/cardshell/internal/replay"
)

var (
	deckASCII   bool
	deckUnicode bool
	deckNoIDs   bool
	deckWidth   int
	deckHeight  int

	dumpOut   string
	dumpTable bool
)

// replayResult is the JSON form of a replay
type replayResult struct {
	Script   string          `json:"script"`
	State    string          `json:"state"`
	Passed   bool            `json:"passed"`
	Failures []string        `json:"failures,omitempty"`
	Intents  []intent.Intent `json:"intents"`
}

// runScript loads a script, layers the configured settings under its own
// and replays it
func runScript(path string) (*replay.Script, *replay.Result, *replay.Runner, error) {
	script, err := replay.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	base, err := loadSettings()
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := base.Map()
	if err != nil {
		return nil, nil, nil, err
	}
	script.Layer(m)

	res, runner, err := replay.Run(script, logging.For("replay"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("replay %s: %w", path, err)
	}
	logging.Info().
		Str("script", path).
		Str("state", res.State.String()).
		Int("intents", len(res.Intents)).
		Bool("passed", res.Passed()).
		Msg("replay complete")
	return script, res, runner, nil
}

func failureStrings(res *replay.Result) []string {
	out := make([]string, len(res.Failures))
	for i, f := range res.Failures {
		out[i] = f.String()
	}
	return out
}

// replayCmd runs a script and prints the intents it produced
var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a scripted input session",
	Long: `Replays a YAML script of key, touch, orientation and card lifecycle
steps and prints every intent emitted, the final card manager state and
any expectation that did not hold.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, res, _, err := runScript(args[0])
		if err != nil {
			return err
		}
		failures := failureStrings(res)

		if jsonOutput {
			name := script.Name
			if name == "" {
				name = args[0]
			}
			if err := printJSON(replayResult{
				Script:   name,
				State:    res.State.String(),
				Passed:   res.Passed(),
				Failures: failures,
				Intents:  res.Intents,
			}); err != nil {
				return err
			}
		} else {
			if script.Name != "" {
				infoColor.Println(script.Name)
			}
			output.PrintIntentsTable(os.Stdout, res.Intents)
			fmt.Print("Final state: ")
			keyColor.Println(res.State.String())
			output.PrintFailures(os.Stdout, failures)
			if res.Passed() {
				successColor.Println("✓ All expectations held")
			}
		}

		if !res.Passed() {
			return fmt.Errorf("%d expectation(s) failed", len(res.Failures))
		}
		return nil
	},
}

// deckCmd draws the deck after a replay
var deckCmd = &cobra.Command{
	Use:   "deck <script>",
	Short: "Draw the card deck after replaying a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, res, runner, err := runScript(args[0])
		if err != nil {
			return err
		}

		opts := output.DefaultVisualizationOptions()
		if deckASCII {
			opts.UseUnicode = false
		}
		if deckUnicode {
			opts.UseUnicode = true
		}
		if deckNoIDs {
			opts.ShowIDs = false
		}
		if deckWidth > 0 {
			opts.MaxWidth = deckWidth
		}
		if deckHeight > 0 {
			opts.MaxHeight = deckHeight
		}

		output.PrintDeck(os.Stdout, output.DeckView{
			Screen:   runner.Shell.Manager.Screen(),
			State:    res.State.String(),
			Snapshot: runner.Shell.Arena.Snapshot(),
		}, opts)
		return nil
	},
}

// dumpCmd exports the arena after a replay
var dumpCmd = &cobra.Command{
	Use:   "dump <script>",
	Short: "Dump the card arena after replaying a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, runner, err := runScript(args[0])
		if err != nil {
			return err
		}
		snap := runner.Shell.Arena.Snapshot()

		switch {
		case dumpOut != "":
			if err := snap.SaveTo(dumpOut); err != nil {
				return err
			}
			successColor.Printf("✓ Snapshot written to %s\n", dumpOut)
			return nil
		case dumpTable && !jsonOutput:
			output.PrintCardsTable(os.Stdout, snap)
			return nil
		default:
			return snap.Write(os.Stdout)
		}
	},
}
