package stlascii

import (
	"os"
	"testing"
)

// TestMain forces a clean C/POSIX numeric locale for the whole package's
// test run, so these tests don't depend on (or fail because of) whatever
// LC_ALL/LC_NUMERIC/LANG happen to be set in the host environment.
func TestMain(m *testing.M) {
	saved := map[string]*string{}
	for _, name := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if v, ok := os.LookupEnv(name); ok {
			vv := v
			saved[name] = &vv
		} else {
			saved[name] = nil
		}
		_ = os.Unsetenv(name)
	}

	code := m.Run()

	for name, v := range saved {
		if v == nil {
			_ = os.Unsetenv(name)
		} else {
			_ = os.Setenv(name, *v)
		}
	}

	os.Exit(code)
}
