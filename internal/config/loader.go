// Package config provides configuration management for hui.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// DefaultConfigPath returns where hui looks for its config file:
// $XDG_CONFIG_HOME/hui/config.toml, or ~/.config/hui/config.toml.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hui", "config.toml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "hui", "config.toml")
}

// DetectConfigPath returns the config file path if the file exists, or
// empty string if none exists (caller should use defaults).
func DetectConfigPath() string {
	configPath := DefaultConfigPath()
	if configPath == "" {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}
	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
// Every failure is a *errors.ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &huierrors.ConfigError{Path: path, Err: huierrors.Wrap(huierrors.ErrNotFound, "config file")}
		}
		return nil, &huierrors.ConfigError{Path: path, Err: err}
	}

	// Start with defaults
	cfg := DefaultConfig()

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, &huierrors.ConfigError{Path: path, Err: huierrors.Wrap(err, "parse")}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &huierrors.ConfigError{Path: path, Err: huierrors.Invalidf("unknown key %q", undecoded[0].String())}
	}

	applyEnvOverrides(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &huierrors.ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values
// plus environment overrides.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPaths(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, &huierrors.ConfigError{Err: err}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// Resolve loads path when it is set and falls back to LoadWithDefaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadWithDefaults()
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: HUI_<SECTION>_<FIELD>
//
// Examples:
// - HUI_HISTORY_SHELL overrides [history].shell
// - HUI_HISTORY_FILES overrides [history].files (comma-separated)
// - HUI_UI_BACKEND overrides [ui].backend
//
// HUI_TERM is also honored for the shell kind; HUI_HISTORY_SHELL wins
// when both are set.
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	// Helper to lookup and apply string override
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	// Helper to lookup and apply bool override
	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// Helper to lookup and apply int override
	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// Helper to lookup and apply comma-separated list override
	applyList := func(key string, target *[]string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var out []string
			for _, part := range strings.Split(val, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			*target = out
		}
	}

	// History section
	applyString("HUI_TERM", &c.History.Shell)
	applyString("HUI_HISTORY_SHELL", &c.History.Shell)
	c.History.Shell = normalizeShell(c.History.Shell)
	applyList("HUI_HISTORY_FILES", &c.History.Files)

	// UI section
	applyString("HUI_UI_BACKEND", &c.UI.Backend)
	applyInt("HUI_UI_HEIGHT", &c.UI.Height)
	applyBool("HUI_UI_SHOW_HELP", &c.UI.ShowHelp)
	applyBool("HUI_UI_SHOW_PREVIEW", &c.UI.ShowPreview)

	// Output section
	applyString("HUI_OUTPUT_SINK", &c.Output.Sink)
	applyBool("HUI_OUTPUT_FALLBACK_STDOUT", &c.Output.FallbackStdout)

	// Log section
	applyString("HUI_LOG_LEVEL", &c.Log.Level)
	applyString("HUI_LOG_FILE", &c.Log.File)
}

// normalizeShell lower-cases the shell name and strips a leading path, so
// HUI_TERM=/bin/zsh and shell = "ZSH" both read as "zsh".
func normalizeShell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(filepath.Base(s))
}

// expandPaths expands ~ to the home directory in file paths.
func expandPaths(c *Config) {
	for i, f := range c.History.Files {
		c.History.Files[i] = ExpandHome(f)
	}
	c.Log.File = ExpandHome(c.Log.File)
}

// ExpandHome replaces a leading "~" or "~/" with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
}
