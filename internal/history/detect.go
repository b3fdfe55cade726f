package history

import (
	"os"
	"path/filepath"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

// candidatePaths lists history locations relative to $HOME, most common first.
var candidatePaths = map[ShellKind][]string{
	ShellBash: {".bash_history", ".local/share/bash/history"},
	ShellZsh:  {".zsh_history", ".zhistory", ".histfile"},
}

// DetectShell returns the shell kind named by $SHELL, falling back to bash.
func DetectShell() ShellKind {
	if shell := os.Getenv("SHELL"); shell != "" {
		if kind, err := ParseShellKind(shell); err == nil {
			return kind
		}
	}
	return ShellBash
}

// DetectPath returns the first existing history file for kind.
// $HISTFILE wins when it is set and points at a regular file.
func DetectPath(kind ShellKind) (string, error) {
	if hf := os.Getenv("HISTFILE"); hf != "" && isFile(hf) {
		return hf, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", huierrors.Wrap(err, "resolve home directory")
	}

	for _, rel := range candidatePaths[kind] {
		path := filepath.Join(home, rel)
		if isFile(path) {
			return path, nil
		}
	}

	return "", huierrors.Wrap(huierrors.ErrNotFound, kind.String()+" history file")
}

// DefaultPath returns the conventional history path for kind without
// checking that it exists.
func DefaultPath(kind ShellKind) string {
	paths := candidatePaths[kind]
	home, err := os.UserHomeDir()
	if err != nil || len(paths) == 0 {
		return ""
	}
	return filepath.Join(home, paths[0])
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
