package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chazuruo/hui/internal/config"
	huierrors "github.com/chazuruo/hui/internal/errors"
	"github.com/chazuruo/hui/internal/history"
	"github.com/chazuruo/hui/internal/output"
)

// InitOptions contains the options for the init command.
type InitOptions struct {
	// Scriptable/flag options for --no-tui mode; they also seed the form.
	Shell   string
	Files   []string
	Backend string
	Sink    string
	Height  int
	Force   bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a hui configuration file",
		Long: `Create a hui configuration file.

The init command guides you through the settings:
- Shell history format (bash or zsh)
- History files to read
- Picker backend and list height
- Where a picked command goes (clipboard or stdout)

Use --no-tui with flags for scripted setup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	addHistoryFlags(cmd, &opts.Shell, &opts.Files)
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "picker backend: bubbletea, tview, basic")
	cmd.Flags().StringVar(&opts.Sink, "sink", "", "output sink: clipboard or stdout")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "number of visible rows")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")

	return cmd
}

func initConfigPath() string {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	if ConfigPath != "" {
		return config.ExpandHome(ConfigPath)
	}
	return config.DefaultConfigPath()
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	path := initConfigPath()
	if path == "" {
		return huierrors.Wrap(huierrors.ErrNotFound, "home directory")
	}
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return huierrors.Invalidf("config %s already exists; use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	applyInitFlags(cfg, opts, cmd.Flags().Changed("height"))

	if !IsNoTUI() {
		if err := runInitForm(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to: %s\n", path)
	return nil
}

// applyInitFlags copies the flags that were set into cfg.
func applyInitFlags(cfg *config.Config, opts *InitOptions, heightSet bool) {
	if opts.Shell != "" {
		if kind, err := history.ParseShellKind(opts.Shell); err == nil {
			cfg.History.Shell = kind.String()
		} else {
			cfg.History.Shell = opts.Shell
		}
	}
	if len(opts.Files) > 0 {
		cfg.History.Files = make([]string, len(opts.Files))
		for i, f := range opts.Files {
			cfg.History.Files[i] = config.ExpandHome(f)
		}
	}
	if opts.Backend != "" {
		cfg.UI.Backend = opts.Backend
	}
	if opts.Sink != "" {
		cfg.Output.Sink = opts.Sink
	}
	if heightSet {
		cfg.UI.Height = opts.Height
	}
}

// runInitForm asks for each setting, starting from cfg's values.
func runInitForm(cfg *config.Config) error {
	shell := cfg.History.Shell
	if shell == "" {
		shell = history.DetectShell().String()
	}
	files := strings.Join(cfg.History.Files, ", ")
	height := strconv.Itoa(cfg.UI.Height)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Shell history format").
				Options(
					huh.NewOption("bash", history.ShellBash.String()),
					huh.NewOption("zsh (extended history)", history.ShellZsh.String()),
				).
				Value(&shell),
			huh.NewInput().
				Title("History files").
				Description("Comma-separated; leave empty to use the shell's default file").
				Placeholder("~/.bash_history").
				Value(&files),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Picker backend").
				Options(
					huh.NewOption("Bubble Tea (default)", config.BackendBubbletea),
					huh.NewOption("tview", config.BackendTview),
					huh.NewOption("Basic ANSI", config.BackendBasic),
				).
				Value(&cfg.UI.Backend),
			huh.NewInput().
				Title("Visible rows").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > config.MaxHeight {
						return fmt.Errorf("enter a number from 1 to %d", config.MaxHeight)
					}
					return nil
				}).
				Value(&height),
			huh.NewConfirm().
				Title("Show the key help line?").
				Value(&cfg.UI.ShowHelp),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Send the picked command to").
				Options(
					huh.NewOption("Clipboard", output.SinkClipboard),
					huh.NewOption("Standard output", output.SinkStdout),
				).
				Value(&cfg.Output.Sink),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return huierrors.ErrCanceled
		}
		return huierrors.Wrap(err, "form error")
	}

	cfg.History.Shell = shell
	cfg.History.Files = splitList(files)
	cfg.UI.Height, _ = strconv.Atoi(strings.TrimSpace(height))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := config.ExpandHome(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
