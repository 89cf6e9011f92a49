package zlob

import (
	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/pathmatcher"
)

// MatchFlags re-exports fnmatch.Flags at the package root for callers that
// only need single-name matching, without pulling in the full GLOB_* flag
// bitset a filesystem Glob call needs.
type MatchFlags = fnmatch.Flags

// SingleMatcher tests one compiled pattern against many candidate names or
// paths without ever touching a filesystem — the pathmatcher.Matcher
// exposed at the package root for convenience.
type SingleMatcher = pathmatcher.Matcher

// NewSingleMatcher compiles pattern once for repeated Match calls.
func NewSingleMatcher(pattern string, flags MatchFlags) *SingleMatcher {
	return pathmatcher.NewSingle(pattern, flags)
}
