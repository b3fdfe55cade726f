// Package logging builds the diagnostic logger. Logs go to a file because
// the terminal belongs to the picker.
package logging

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chazuruo/hui/internal/config"
	huierrors "github.com/chazuruo/hui/internal/errors"
)

// New returns a JSON file logger for cfg, tagged with a fresh session id.
// An empty file or the level "off" yields a no-op logger.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" || cfg.Level == "off" {
		return zap.NewNop(), nil
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, huierrors.Invalidf("log level %q", cfg.Level)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, huierrors.Wrap(err, "create log directory")
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{cfg.File}
	loggerConfig.ErrorOutputPaths = []string{cfg.File}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, huierrors.Wrap(err, "build logger")
	}

	return logger.With(zap.String("session", uuid.NewString())), nil
}
