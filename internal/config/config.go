// Package config provides configuration management for hui.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"os"
	"path/filepath"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// Interactive backends.
const (
	BackendBubbletea = "bubbletea"
	BackendTview     = "tview"
	BackendBasic     = "basic"
)

// MaxHeight bounds ui.height.
const MaxHeight = 500

// Config is the top-level configuration struct for hui.
type Config struct {
	History HistoryConfig `toml:"history"`
	UI      UIConfig      `toml:"ui"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

// HistoryConfig selects the history sources.
type HistoryConfig struct {
	// Shell is the history grammar: "bash", "zsh", or empty to detect
	// from $SHELL.
	Shell string `toml:"shell"`

	// Files lists history files read in order. Empty means the default
	// file for the shell.
	Files []string `toml:"files"`
}

// UIConfig contains interactive picker settings.
type UIConfig struct {
	// Backend is the interactive front end.
	// Valid values: "bubbletea", "tview", "basic".
	Backend string `toml:"backend"`

	// Height is the number of visible rows in the result list.
	Height int `toml:"height"`

	// ShowHelp controls the key help line under the list.
	ShowHelp bool `toml:"show_help"`

	// ShowPreview shows the full highlighted command with its usage count.
	ShowPreview bool `toml:"show_preview"`
}

// OutputConfig controls where a selected command goes.
type OutputConfig struct {
	// Sink is "clipboard" or "stdout".
	Sink string `toml:"sink"`

	// FallbackStdout prints the selection on stdout when the clipboard fails.
	FallbackStdout bool `toml:"fallback_stdout"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error", or "off".
	Level string `toml:"level"`

	// File is the log file path. Empty disables logging.
	File string `toml:"file"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Shell: "",
			Files: nil,
		},
		UI: UIConfig{
			Backend:     BackendBubbletea,
			Height:      20,
			ShowHelp:    true,
			ShowPreview: true,
		},
		Output: OutputConfig{
			Sink:           "clipboard",
			FallbackStdout: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  defaultLogFile(),
		},
	}
}

// defaultLogFile returns $XDG_STATE_HOME/hui/hui.log, falling back to
// ~/.local/state/hui/hui.log.
func defaultLogFile() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "hui", "hui.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "hui", "hui.log")
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an ErrInvalid error
// describing the problem.
func (c *Config) Validate() error {
	// Validate History section
	validShells := map[string]bool{
		"":     true,
		"bash": true,
		"zsh":  true,
	}
	if !validShells[c.History.Shell] {
		return huierrors.Invalidf("history.shell must be one of: bash, zsh, or empty; got %q", c.History.Shell)
	}
	for i, f := range c.History.Files {
		if f == "" {
			return huierrors.Invalidf("history.files[%d] cannot be empty", i)
		}
	}

	// Validate UI section
	validBackends := map[string]bool{
		BackendBubbletea: true,
		BackendTview:     true,
		BackendBasic:     true,
	}
	if !validBackends[c.UI.Backend] {
		return huierrors.Invalidf("ui.backend must be one of: bubbletea, tview, basic; got %q", c.UI.Backend)
	}
	if c.UI.Height < 1 || c.UI.Height > MaxHeight {
		return huierrors.Invalidf("ui.height must be between 1 and %d; got %d", MaxHeight, c.UI.Height)
	}

	// Validate Output section
	validSinks := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	if !validSinks[c.Output.Sink] {
		return huierrors.Invalidf("output.sink must be one of: clipboard, stdout; got %q", c.Output.Sink)
	}

	// Validate Log section
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLevels[c.Log.Level] {
		return huierrors.Invalidf("log.level must be one of: debug, info, warn, error, off; got %q", c.Log.Level)
	}

	return nil
}
