package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// NewRootCommand creates the hui command tree. Running hui without a
// subcommand opens the interactive search.
func NewRootCommand(info VersionInfo) *cobra.Command {
	opts := &SearchOptions{}

	rootCmd := &cobra.Command{
		Use:   "hui",
		Short: "Search your shell history interactively",
		Long: `hui reads your bash or zsh history, ranks every distinct command by how
often and how recently you ran it, and lets you narrow the list as you type.
The command you pick is copied to the clipboard, or printed with --stdout.

Keys: type to filter, ↑/↓ (ctrl+p/ctrl+n) to move, ctrl+u to clear,
enter to pick, esc or ctrl+c to quit.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	AddGlobalFlags(rootCmd)
	AddSearchFlags(rootCmd, opts)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return huierrors.Wrap(huierrors.ErrInvalid, err.Error())
	})

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewVersionCommand(info))

	return rootCmd
}

// ReportError writes err for the user. A canceled search prints nothing. When
// the sink rejected a pick, the command itself is printed so it is not lost.
func ReportError(w io.Writer, err error) {
	if err == nil || huierrors.IsCanceled(err) {
		return
	}
	fmt.Fprintf(w, "hui: %v\n", err)
	if se, ok := huierrors.AsSinkError(err); ok && se.Text != "" {
		fmt.Fprintf(w, "hui: selected command: %s\n", se.Text)
	}
}
