package zlob

import (
	"github.com/dmtrKovalenko/zlob/ignorefs"
	"github.com/dmtrKovalenko/zlob/option"
	"github.com/spf13/afero"
)

// Flag re-exports option.Flag at the package root so callers never need to
// import the leaf option package directly.
type Flag = option.Flag

// ErrorFunc is the per-directory error callback passed to Glob via
// WithErrorFunc; a nonzero return aborts the whole call with ErrAborted.
type ErrorFunc = option.ErrorFunc

const (
	ERR                 = option.ERR
	MARK                = option.MARK
	NOSORT              = option.NOSORT
	DOOFFS              = option.DOOFFS
	NOCHECK             = option.NOCHECK
	APPEND              = option.APPEND
	NOESCAPE            = option.NOESCAPE
	PERIOD              = option.PERIOD
	MAGCHAR             = option.MAGCHAR
	ALTDIRFUNC          = option.ALTDIRFUNC
	BRACE               = option.BRACE
	NOMAGIC             = option.NOMAGIC
	TILDE               = option.TILDE
	ONLYDIR             = option.ONLYDIR
	TILDECHECK          = option.TILDECHECK
	GITIGNORE           = option.GITIGNORE
	DOUBLESTARRECURSIVE = option.DOUBLESTARRECURSIVE
	EXTGLOB             = option.EXTGLOB
)

// config collects every Option's effect before a Glob call builds its
// traverse.Engine.
type config struct {
	fs          afero.Fs
	offs        int
	caseFold    bool
	onError     ErrorFunc
	ignore      *ignorefs.Filter
	ignoreLines []string
	tildeLookup func(string) (string, bool)
	existing    *Result
}

// Option configures one Glob call. Options compose by functional
// application, the same pattern cobra/viper-style CLI code in the pack
// uses for building up a request before executing it.
type Option func(*config)

// WithFs directs the traversal through fs instead of the real filesystem —
// the Go expression of an alternate-directory-access callback.
// afero.MemMapFs is the idiomatic choice for tests.
func WithFs(fs afero.Fs) Option {
	return func(c *config) { c.fs = fs }
}

// WithOffs sets how many leading null slots the result reserves; it takes
// effect only when the DOOFFS flag is set.
func WithOffs(n int) Option {
	return func(c *config) { c.offs = n }
}

// WithCaseFold enables ASCII case-insensitive matching. This sits outside
// the core engine's POSIX semantics; it exists for the ignorefs-compatible,
// Git-style case-folding mode.
func WithCaseFold(fold bool) Option {
	return func(c *config) { c.caseFold = fold }
}

// WithErrorFunc installs a per-directory error callback.
func WithErrorFunc(fn ErrorFunc) Option {
	return func(c *config) { c.onError = fn }
}

// WithGitignoreFilter installs an already-compiled ignorefs.Filter. Use
// this when the filter is shared across multiple Glob calls.
func WithGitignoreFilter(f *ignorefs.Filter) Option {
	return func(c *config) { c.ignore = f }
}

// WithGitignoreLines compiles an ad-hoc gitignore filter from lines (the
// same shape ignorefs.New accepts) scoped to this one call.
func WithGitignoreLines(lines ...string) Option {
	return func(c *config) { c.ignoreLines = lines }
}

// WithTildeLookup overrides the ~user → home-directory resolver consulted
// under the TILDE flag; the default is pattern.Expand's os/user-backed
// lookup.
func WithTildeLookup(lookup func(user string) (home string, ok bool)) Option {
	return func(c *config) { c.tildeLookup = lookup }
}

// WithAppend seeds the new call's aggregator from an existing Result,
// implementing the APPEND flag's merge-into-existing-table semantics.
func WithAppend(existing *Result) Option {
	return func(c *config) { c.existing = existing }
}
