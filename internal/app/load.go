// Package app wires history loading, ranking, and the picker together for
// the hui commands.
package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/chazuruo/hui/internal/config"
	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/history"
	"github.com/chazuruo/hui/internal/rank"
)

// LoadOptions selects the history to load. Flag values win over the
// config, which wins over detection.
type LoadOptions struct {
	Shell  string   // --shell; empty defers to the config, then $SHELL
	Files  []string // --file; empty defers to the config, then the default file
	Config *config.Config
	Log    *zap.Logger
}

// Master is the ranked command list and where it came from.
type Master struct {
	Shell    history.ShellKind
	Files    []string
	Commands []*rank.RankedCommand
	Stats    history.Stats
}

// ResolveShell picks the history grammar. The config value already carries
// HUI_TERM and HUI_HISTORY_SHELL.
func ResolveShell(flag string, cfg *config.Config) (history.ShellKind, error) {
	if flag != "" {
		return history.ParseShellKind(flag)
	}
	if cfg != nil && cfg.History.Shell != "" {
		return history.ParseShellKind(cfg.History.Shell)
	}
	return history.DetectShell(), nil
}

// ResolveFiles picks the history files for kind. Without flags or config
// entries it falls back to the first existing default location, and
// reports SourceUnavailable when there is none.
func ResolveFiles(kind history.ShellKind, flags []string, cfg *config.Config) ([]string, error) {
	if len(flags) > 0 {
		files := make([]string, len(flags))
		for i, f := range flags {
			files[i] = config.ExpandHome(f)
		}
		return files, nil
	}
	if cfg != nil && len(cfg.History.Files) > 0 {
		return cfg.History.Files, nil
	}

	path, err := history.DetectPath(kind)
	if err != nil {
		return nil, &huierrors.SourceError{Path: history.DefaultPath(kind), Err: err}
	}
	return []string{path}, nil
}

// LoadMaster resolves, opens, parses, and ranks the history. An unreadable
// file fails the whole load; an empty history does not.
func LoadMaster(ctx context.Context, opts LoadOptions) (*Master, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	kind, err := ResolveShell(opts.Shell, opts.Config)
	if err != nil {
		return nil, err
	}
	files, err := ResolveFiles(kind, opts.Files, opts.Config)
	if err != nil {
		return nil, err
	}

	sources := make([]history.Source, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, huierrors.Wrap(huierrors.ErrCanceled, err.Error())
		}
		f, err := os.Open(path)
		if err != nil {
			log.Warn("cannot open history file", zap.String("path", path), zap.Error(err))
			return nil, &huierrors.SourceError{Path: path, Err: err}
		}
		defer f.Close()
		sources = append(sources, history.Source{Name: path, Reader: f})
	}

	parser, err := history.NewParser(kind, history.WithLogger(log))
	if err != nil {
		return nil, err
	}
	entries, stats, err := parser.ParseWithStats(sources...)
	if err != nil {
		return nil, err
	}

	commands := rank.Rank(entries)
	log.Info("history ranked",
		zap.Strings("files", files),
		zap.Int("entries", len(entries)),
		zap.Int("commands", len(commands)))

	return &Master{
		Shell:    kind,
		Files:    files,
		Commands: commands,
		Stats:    stats,
	}, nil
}
