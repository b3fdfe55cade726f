package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chazuruo/hui/internal/app"
	"github.com/chazuruo/hui/internal/filter"
	"github.com/chazuruo/hui/internal/output"
)

// ListOptions contains the options for the list command.
type ListOptions struct {
	Shell  string
	Files  []string
	Query  string
	Limit  int
	Format string
}

// NewListCommand creates the list command for printing ranked history.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print ranked commands without the picker",
		Long: `Print the ranked, de-duplicated history, best first.

An optional query keeps only commands containing it, ignoring case, the
same way the interactive search filters.

Examples:
  hui list                    # Top commands as a table
  hui list git --limit 5      # Five best commands containing "git"
  hui list --format json      # Machine-readable output
  hui list --format plain     # One command per line, for scripts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Query = args[0]
			}
			return runList(cmd, opts)
		},
	}

	addHistoryFlags(cmd, &opts.Shell, &opts.Files)
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of commands (0 for all)")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, yaml, plain)")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	format, err := output.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

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

	matches := filter.Match(m.Commands, opts.Query)
	return output.WriteList(cmd.OutOrStdout(), format, output.Items(matches, opts.Limit), time.Now())
}
