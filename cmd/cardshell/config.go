package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/cardshell/internal/config"
	"github.com/yourusername/cardshell/internal/input"
	"github.com/yourusername/cardshell/internal/intent"
	"github.com/yourusername/cardshell/internal/output"
	"github.com/yourusername/cardshell/internal/suggest"
	"github.com/yourusername/cardshell/internal/wm"
)

// configCmd is the parent command for settings operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Settings operations",
}

// configShowCmd prints the effective settings
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(s)
		}
		m, err := s.Map()
		if err != nil {
			return err
		}
		output.PrintSettingsTable(os.Stdout, m)
		return nil
	},
}

// configValidateCmd validates a settings file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a settings file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}
		path, err := config.Resolve(path)
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("no settings file in ~/%s", config.DefaultConfigDir)
		}

		if err := validateFile(path); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Settings are valid")
		fmt.Printf("  File: %s\n", path)
		return nil
	},
}

// validateFile checks YAML and JSON files strictly, rejecting unknown
// keys; other formats go through the viper loader
func validateFile(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	switch format {
	case "yaml", "yml", "json":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = config.LoadFromBytes(data, format)
		return err
	default:
		_, err := config.Load(path)
		return err
	}
}

// nameLists are the lists printed by the keys command
var nameLists = map[string]func() []string{
	"keys":     input.KeyNames,
	"modes":    input.ModeNames,
	"intents":  intent.KindNames,
	"states":   wm.StateNames,
	"settings": config.Keys,
}

// keysCmd lists the names scripts may use
var keysCmd = &cobra.Command{
	Use:   "keys [keys|modes|intents|states|settings]",
	Short: "List key, mode, intent, state or setting names",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		what := "keys"
		if len(args) > 0 {
			what = args[0]
		}
		list, ok := nameLists[what]
		if !ok {
			kinds := make([]string, 0, len(nameLists))
			for k := range nameLists {
				kinds = append(kinds, k)
			}
			if match, ok := suggest.Closest(what, kinds); ok {
				return fmt.Errorf("unknown name list %q (did you mean %q?)", what, match)
			}
			return fmt.Errorf("unknown name list %q", what)
		}

		if jsonOutput {
			return printJSON(list())
		}
		output.PrintNames(os.Stdout, list())
		return nil
	},
}
