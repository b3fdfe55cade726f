package main

import (
	"os"

	"github.com/chazuruo/hui/internal/cli"
	huierrors "github.com/chazuruo/hui/internal/errors"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

func main() {
	rootCmd := cli.NewRootCommand(cli.VersionInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	})

	if err := rootCmd.Execute(); err != nil {
		cli.ReportError(os.Stderr, err)
		os.Exit(huierrors.ExitCode(err))
	}
}
