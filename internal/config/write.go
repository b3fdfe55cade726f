package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

const fileHeader = "# hui configuration. Environment variables HUI_<SECTION>_<FIELD> override these values.\n\n"

// Write stores cfg at path as TOML, creating the directory as needed. The
// file is replaced atomically so a failed write never leaves a truncated
// config behind.
func Write(path string, cfg *Config) error {
	fail := func(err error, op string) error {
		return &huierrors.ConfigError{Path: path, Err: huierrors.Wrap(err, op)}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err, "create config directory")
	}

	buf := bytes.NewBufferString(fileHeader)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return fail(err, "encode config")
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fail(err, "create temp file")
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fail(err, "write config file")
	}
	if err := tmp.Close(); err != nil {
		return fail(err, "write config file")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail(err, "write config file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err, "replace config file")
	}
	return nil
}
