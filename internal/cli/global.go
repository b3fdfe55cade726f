// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazuruo/hui/internal/config"
	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/logging"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// ConfigPath is the --config flag. Empty means the XDG default.
	ConfigPath string

	// LogLevel is the --log-level flag. Empty keeps the configured level.
	LogLevel string

	// globalMutex protects the flag values for concurrent access.
	globalMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; use plain text output")
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"config file path (default $XDG_CONFIG_HOME/hui/config.toml)")
	cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "",
		"log level: debug, info, warn, error, off")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return NoTUI
}

// session is the configuration and logger one command runs with.
type session struct {
	cfg        *config.Config
	configPath string
	log        *zap.Logger
}

// openSession resolves the config named by the global flags and opens the
// log file.
func openSession() (*session, error) {
	globalMutex.RLock()
	path, level := ConfigPath, LogLevel
	globalMutex.RUnlock()

	cfg, err := config.Resolve(config.ExpandHome(path))
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = config.DetectConfigPath()
	}

	if level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, huierrors.Wrap(err, "open log")
	}
	log.Debug("session opened", zap.String("config", path))

	return &session{cfg: cfg, configPath: path, log: log}, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}
