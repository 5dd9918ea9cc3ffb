// Package clocale implements spec.md's C5 locale guard. Go's strconv
// always parses/formats floats using C-locale conventions (decimal point
// '.', no locale-dependent grouping) regardless of the OS locale — unlike
// C's strtod, which honors LC_NUMERIC. The risk this guard defends against
// is a caller (or a cgo dependency elsewhere in the process) that has set
// LC_NUMERIC expecting it to affect numeric I/O: the ASCII codec would
// silently disagree with the rest of the process about decimal points.
//
// CheckNumericLocale is therefore a precondition assertion, not something
// the codec can fix: per spec.md §9, the codec asserts but never mutates
// the locale, leaving save/restore to the caller via SaveNumericLocale and
// RestoreNumericLocale.
package clocale

import (
	"os"
	"strings"

	"github.com/fougue-go/gmio/errs"
)

// numericLocaleVars lists the environment variables that influence C's
// LC_NUMERIC category, in POSIX precedence order (LC_ALL overrides
// LC_NUMERIC overrides LANG).
var numericLocaleVars = []string{"LC_ALL", "LC_NUMERIC", "LANG"}

// CheckNumericLocale reports an error if the process environment requests
// a non-C/POSIX numeric locale. It never inspects or mutates glibc's actual
// locale state (Go programs don't call setlocale), only the environment
// variables that would drive it.
func CheckNumericLocale() error {
	for _, name := range numericLocaleVars {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}

		if isCOrPOSIX(v) {
			return nil
		}

		return errs.New(errs.BadLcNumeric, "numeric locale "+name+"="+v+" is not C/POSIX")
	}

	return nil
}

func isCOrPOSIX(v string) bool {
	base, _, _ := strings.Cut(v, ".")

	return base == "C" || base == "POSIX" || base == ""
}

// Saved holds a snapshot of the numeric-locale environment variables taken
// by SaveNumericLocale, to be restored with RestoreNumericLocale.
type Saved struct {
	values map[string]*string
}

// SaveNumericLocale snapshots the current numeric-locale environment
// variables so a caller can force C/POSIX locale for the duration of an
// ASCII codec call and restore the previous values afterward.
func SaveNumericLocale() *Saved {
	s := &Saved{values: make(map[string]*string, len(numericLocaleVars))}
	for _, name := range numericLocaleVars {
		if v, ok := os.LookupEnv(name); ok {
			vv := v
			s.values[name] = &vv
		} else {
			s.values[name] = nil
		}
	}

	return s
}

// RestoreNumericLocale restores the environment variables captured by
// SaveNumericLocale.
func RestoreNumericLocale(s *Saved) {
	for name, v := range s.values {
		if v == nil {
			_ = os.Unsetenv(name)
		} else {
			_ = os.Setenv(name, *v)
		}
	}
}

// ForceCNumeric sets LC_ALL=C for the duration of fn, restoring the prior
// environment afterward. Convenience wrapper around Save/RestoreNumericLocale
// for callers who just want ASCII I/O to run under a guaranteed C locale.
func ForceCNumeric(fn func() error) error {
	saved := SaveNumericLocale()
	defer RestoreNumericLocale(saved)

	_ = os.Setenv("LC_ALL", "C")

	return fn()
}
