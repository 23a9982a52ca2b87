// Package fsutil provides filesystem and path utilities.
package fsutil

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"src.tally.dev/pkg/env"
)

var pathSep = string(filepath.Separator)

// GetHome finds the home directory of the current user, preferring the HOME
// environment variable over the value reported by the OS.
func GetHome() (string, error) {
	if home := os.Getenv(env.HOME); home != "" {
		return strings.TrimRight(home, pathSep), nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("can't resolve ~: %v", err)
	}
	return strings.TrimRight(u.HomeDir, pathSep), nil
}
