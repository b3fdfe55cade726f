// Package cli provides Cobra command definitions for hui.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazuruo/hui/internal/app"
	"github.com/chazuruo/hui/internal/config"
	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/filter"
	"github.com/chazuruo/hui/internal/output"
)

// SearchOptions contains the options for the interactive search.
type SearchOptions struct {
	Shell   string
	Files   []string
	Query   string
	Backend string
	Stdout  bool
	Height  int
}

// runPicker replaces the terminal front end in tests. Nil means tui.Run.
var runPicker app.Runner

// AddSearchFlags registers the search flags on the root command.
func AddSearchFlags(cmd *cobra.Command, opts *SearchOptions) {
	addHistoryFlags(cmd, &opts.Shell, &opts.Files)
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "start with this query")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "picker backend: bubbletea, tview, basic")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "print the selection on stdout instead of copying it")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "number of visible rows")
}

func addHistoryFlags(cmd *cobra.Command, shell *string, files *[]string) {
	cmd.Flags().StringVar(shell, "shell", "", "history format: bash or zsh (default from $SHELL)")
	cmd.Flags().StringArrayVarP(files, "file", "f", nil, "history file to read (repeatable)")
}

// applySearchFlags layers flag values over the config and revalidates it.
// heightSet reports whether --height was given.
func applySearchFlags(cfg *config.Config, opts *SearchOptions, heightSet bool) error {
	if opts.Backend != "" {
		cfg.UI.Backend = opts.Backend
	}
	if heightSet {
		cfg.UI.Height = opts.Height
	}
	if opts.Stdout {
		cfg.Output.Sink = output.SinkStdout
	}
	return cfg.Validate()
}

func runSearch(cmd *cobra.Command, opts *SearchOptions) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := applySearchFlags(s.cfg, opts, cmd.Flags().Changed("height")); err != nil {
		return err
	}

	ctx := cmd.Context()
	m, err := app.LoadMaster(ctx, app.LoadOptions{
		Shell:  opts.Shell,
		Files:  opts.Files,
		Config: s.cfg,
		Log:    s.log,
	})
	if err != nil {
		return err
	}

	sink, err := output.New(s.cfg.Output.Sink, cmd.OutOrStdout(), cmd.ErrOrStderr(), s.cfg.Output.FallbackStdout)
	if err != nil {
		return err
	}

	if IsNoTUI() {
		return selectTop(m, opts.Query, sink, s.log)
	}

	_, err = app.Select(ctx, m.Commands, app.SelectOptions{
		Backend:     s.cfg.UI.Backend,
		Query:       opts.Query,
		Height:      s.cfg.UI.Height,
		ShowHelp:    s.cfg.UI.ShowHelp,
		ShowPreview: s.cfg.UI.ShowPreview,
		Sink:        sink,
		Log:         s.log,
		Run:         runPicker,
	})
	return err
}

// selectTop delivers the best match for query without a picker.
func selectTop(m *app.Master, query string, sink output.Sink, log *zap.Logger) error {
	matches := filter.Match(m.Commands, query)
	if len(matches) == 0 {
		return huierrors.Wrap(huierrors.ErrNotFound, fmt.Sprintf("no command matches %q", query))
	}
	log.Info("selected top match", zap.Int("matches", len(matches)))
	return sink.Deliver(matches[0].Text)
}
