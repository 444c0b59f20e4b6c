package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/logging"
)

var (
	configPath string
	logPath    string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "cardshell",
	Short: "Card shell input core - gesture routing and card window management",
	Long: `cardshell drives the touch, gesture and card window core of a mobile shell.

Scripted input is replayed through the orientation mapper, the gesture
recognizers, the input router and the card window manager, and the
resulting intents, states and deck layout are printed.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default ~/"+config.DefaultConfigDir+"/"+config.DefaultConfigName+".<ext>)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "Log file (default "+logging.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(keysCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	deckCmd.Flags().BoolVar(&deckASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	deckCmd.Flags().BoolVar(&deckUnicode, "unicode", false, "Force Unicode mode")
	deckCmd.Flags().BoolVar(&deckNoIDs, "no-ids", false, "Hide window IDs")
	deckCmd.Flags().IntVar(&deckWidth, "width", 0, "Override terminal width")
	deckCmd.Flags().IntVar(&deckHeight, "height", 0, "Override terminal height")

	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "Write the snapshot to a file instead of stdout")
	dumpCmd.Flags().BoolVar(&dumpTable, "table", false, "Print the cards as a table")

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if err := logging.Init(logPath); err != nil {
			logging.InitWriter(os.Stderr)
			logging.Warn().Err(err).Msg("log file unavailable, logging to stderr")
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		printError(err.Error())
		logging.Close()
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// loadSettings reads the --config file, or the default location when unset
func loadSettings() (*config.Settings, error) {
	if file, err := config.Resolve(configPath); err == nil {
		logging.Debug().Str("file", file).Msg("loading settings")
	}
	s, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}
