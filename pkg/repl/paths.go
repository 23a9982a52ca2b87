package repl

import (
	"os"
	"path/filepath"

	"src.tally.dev/pkg/env"
	"src.tally.dev/pkg/fsutil"
)

// Paths of tally's files, resolved from the XDG base directories with the
// conventional fallbacks under the home directory.

// ConfigPath returns the path of the config file read on startup, unless
// overridden with -config.
func ConfigPath() (string, error) {
	dir, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tally", "config.yaml"), nil
}

// DBPath returns the path of the evaluation history database, unless
// overridden by the config file or -db.
func DBPath() (string, error) {
	dir, err := dataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tally", "db.bolt"), nil
}

func configHome() (string, error) {
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return dir, nil
	}
	home, err := fsutil.GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

func dataHome() (string, error) {
	if dir := os.Getenv(env.XDG_DATA_HOME); dir != "" {
		return dir, nil
	}
	home, err := fsutil.GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
