package fsutil

import (
	"os/user"
	"strings"
	"testing"

	"src.tally.dev/pkg/env"
	"src.tally.dev/pkg/testutil"
)

func TestGetHome_PrefersEnvVariable(t *testing.T) {
	testutil.Setenv(t, env.HOME, "/test/home")
	testGetHome(t, "/test/home")
}

func TestGetHome_RemovesTrailingSlash(t *testing.T) {
	testutil.Setenv(t, env.HOME, "/test/home/")
	testGetHome(t, "/test/home")
}

func TestGetHome_FallsBackToOS(t *testing.T) {
	testutil.Unsetenv(t, env.HOME)
	u, err := user.Current()
	if err != nil {
		t.Skipf("user.Current() -> error %v", err)
	}
	testGetHome(t, strings.TrimRight(u.HomeDir, pathSep))
}

func testGetHome(t *testing.T, want string) {
	t.Helper()
	home, err := GetHome()
	if home != want || err != nil {
		t.Errorf("GetHome() -> (%q, %v), want (%q, nil)", home, err, want)
	}
}
