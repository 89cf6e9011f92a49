package pattern

import (
	"bytes"
	"strings"

	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/internal/simdbytes"
)

// Info is the result of analyzing a full multi-component glob pattern, used
// by the traverse engine to pick which glob_single strategy applies without
// re-deriving these facts on every directory visited.
type Info struct {
	Pattern string

	IsAbsolute      bool
	DirectoriesOnly bool // pattern ends with '/'
	HasRecursive    bool // contains a "**" component
	HasDirWildcards bool // a non-final component contains wildcards

	// LiteralPrefix is the longest run of leading path components that
	// contain no wildcard bytes at all, joined by '/'. An empty prefix
	// means the very first component already has a wildcard.
	LiteralPrefix string
	// FixedComponentCount is the number of components in LiteralPrefix.
	FixedComponentCount int

	// WildcardSuffix is the remainder of the pattern after LiteralPrefix
	// (and its separating '/', if any).
	WildcardSuffix string

	// MaxDepth is the total number of components, used as a sanity upper
	// bound distinct from the traversal engine's fixed recursion cap.
	MaxDepth int

	// SimpleExtension is set when the final component is exactly "*.ext"
	// for some literal ext (e.g. ".go"), letting the traversal engine use
	// a suffix-only match against directory entries.
	SimpleExtension string
	HasSimpleExt    bool
}

// Analyze splits pattern on '/' and classifies each component, grounded on
// doublestar's doGlob component-splitting approach generalized with a
// fixed-component-count / literal-prefix analysis.
func Analyze(pattern string, flags fnmatch.Flags) Info {
	info := Info{Pattern: pattern}

	if strings.HasPrefix(pattern, "/") {
		info.IsAbsolute = true
	}

	if strings.HasSuffix(pattern, "/") && pattern != "/" {
		info.DirectoriesOnly = true
	}

	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return info
	}

	components := strings.Split(trimmed, "/")
	info.MaxDepth = len(components)

	literalRun := 0
	for i, comp := range components {
		if comp == "**" {
			info.HasRecursive = true

			break
		}

		if simdbytes.HasWildcards([]byte(comp)) {
			if i < len(components)-1 {
				info.HasDirWildcards = true
			}

			break
		}

		literalRun = i + 1
	}

	info.FixedComponentCount = literalRun
	info.LiteralPrefix = strings.Join(components[:literalRun], "/")

	if literalRun < len(components) {
		info.WildcardSuffix = strings.Join(components[literalRun:], "/")
	}

	if last := components[len(components)-1]; !info.HasRecursive {
		if ext, ok := simpleExtensionOf(last); ok {
			info.SimpleExtension = ext
			info.HasSimpleExt = true
		}
	}

	for _, comp := range components[:len(components)-1] {
		if comp != "**" && simdbytes.HasWildcards([]byte(comp)) {
			info.HasDirWildcards = true
		}
	}

	return info
}

// simpleExtensionOf reports whether comp is exactly "*" followed by a
// literal suffix with no other wildcard bytes, returning that suffix.
func simpleExtensionOf(comp string) (string, bool) {
	b := []byte(comp)
	if len(b) < 2 || b[0] != '*' {
		return "", false
	}

	rest := b[1:]
	if simdbytes.HasWildcards(rest) {
		return "", false
	}

	return string(rest), true
}

// ExpandTilde expands a leading "~" or "~user" path prefix using lookup,
// returning path unchanged when lookup reports no home directory; Expand
// supplies the os/user-backed lookup. gitignore/doublestar/pathrules are
// all path-pattern libraries with no account concept, so no third-party library performs user-database
// lookups; this is written directly against the standard library. See
// DESIGN.md for the justification.
func ExpandTilde(path string, lookup func(string) (home string, ok bool)) string {
	if path == "" || path[0] != '~' {
		return path
	}

	rest := path[1:]

	slash := bytes.IndexByte([]byte(rest), '/')

	var user, tail string
	if slash < 0 {
		user = rest
	} else {
		user = rest[:slash]
		tail = rest[slash:]
	}

	home, ok := lookup(user)
	if !ok {
		return path
	}

	return home + tail
}
