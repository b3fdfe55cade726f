package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// VersionInfo contains version information for the binary.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go_version"`
}

// VersionOptions contains the options for the version command.
type VersionOptions struct {
	Short bool
	JSON  bool
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info VersionInfo) *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long: `Display the hui version information.

Shows version, commit hash, build date, and Go version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, opts, info)
		},
	}

	cmd.Flags().BoolVar(&opts.Short, "short", false, "print only the version number")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runVersion(cmd *cobra.Command, opts *VersionOptions, info VersionInfo) error {
	info.Go = runtime.Version()
	w := cmd.OutOrStdout()

	if opts.JSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(info); err != nil {
			return huierrors.Wrap(err, "encode json")
		}
		return nil
	}

	if opts.Short {
		fmt.Fprintln(w, info.Version)
		return nil
	}

	fmt.Fprintf(w, "hui version %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built at: %s\n", info.Date)
	fmt.Fprintf(w, "go version: %s\n", info.Go)

	return nil
}
