package pattern

import (
	"os"
	"os/user"
)

// Expand expands a leading "~" (current user) or "~name" (named user) in
// path using the OS user database, falling back to path unchanged when the
// lookup fails — matching glob(3)'s GLOB_TILDE_CHECK-off behavior of
// leaving an unresolvable tilde prefix as a literal.
func Expand(path string) string {
	return ExpandTilde(path, lookupHome)
}

func lookupHome(name string) (string, bool) {
	if name == "" {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return home, true
		}

		u, err := user.Current()
		if err != nil {
			return "", false
		}

		return u.HomeDir, true
	}

	u, err := user.Lookup(name)
	if err != nil {
		return "", false
	}

	return u.HomeDir, true
}
