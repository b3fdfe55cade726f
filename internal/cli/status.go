package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chazuruo/hui/internal/app"
	huierrors "github.com/chazuruo/hui/internal/errors"
)

// StatusOptions contains the options for the status command.
type StatusOptions struct {
	Shell string
	Files []string
	JSON  bool
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	opts := &StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved configuration and history",
		Long: `Display what a search would use.

Shows:
- Config file in effect
- Shell format and history files
- Picker backend and output sink
- Log file
- Entry, unique command, and malformed record counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}

	addHistoryFlags(cmd, &opts.Shell, &opts.Files)
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runStatus(cmd *cobra.Command, opts *StatusOptions) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	m, err := app.LoadMaster(cmd.Context(), app.LoadOptions{
		Shell:  opts.Shell,
		Files:  opts.Files,
		Config: s.cfg,
		Log:    s.log,
	})
	if err != nil {
		return err
	}

	status := app.Status(s.configPath, s.cfg, m)
	if opts.JSON {
		return huierrors.Wrap(app.PrintStatusJSON(cmd.OutOrStdout(), status), "encode json")
	}
	app.PrintStatus(cmd.OutOrStdout(), status, time.Now())
	return nil
}
