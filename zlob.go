// Package zlob is a POSIX-compatible glob engine: a drop-in replacement
// for the libc glob(3) family extended with recursive "**" matching, brace
// expansion, extglob constructs, gitignore-aware pruning, tilde expansion,
// and alternate directory-access callbacks.
//
// It is grounded on idelchi-go-gitignore's gitignore.go (the compiled
// pattern / flags-bitmask shape) and CiscoM31-doublestar's glob.go
// (component-at-a-time traversal with brace alternatives), with the
// subsystems split into their own packages: fnmatch, pattern, brace,
// traverse, result, ignorefs, and pathmatcher.
package zlob

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/ignorefs"
	"github.com/dmtrKovalenko/zlob/internal/simdbytes"
	"github.com/dmtrKovalenko/zlob/option"
	"github.com/dmtrKovalenko/zlob/pattern"
	"github.com/dmtrKovalenko/zlob/result"
	"github.com/dmtrKovalenko/zlob/traverse"
)

// Glob expands pattern under flags against the real filesystem (or the
// filesystem installed via WithFs) and returns the finalized result table.
// Its lifecycle is: expand tilde, traverse, aggregate, finalize, with the
// NOCHECK/NOMAGIC and NOMATCH fallbacks wrapped around the core traversal.
func Glob(pattern string, flags Flag, opts ...Option) (*Result, error) {
	cfg := config{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !flags.Has(option.DOOFFS) {
		cfg.offs = 0
	}

	resolved, tildeFailed := resolveTilde(pattern, flags, &cfg)
	if tildeFailed {
		return noMatchResult(pattern, flags, &cfg)
	}

	magChar := simdbytes.HasWildcards([]byte(resolved)) ||
		(flags.Has(option.EXTGLOB) && fnmatch.HasExtglobConstruct([]byte(resolved)))

	agg := result.NewAggregator(cfg.offs, flags.Has(option.NOSORT))
	if flags.Has(option.APPEND) {
		agg.SeedFrom(tableOf(cfg.existing))
	}

	engine := buildEngine(flags, &cfg)

	if err := engine.GlobSingle(resolved, agg); err != nil {
		return nil, mapEngineError(err)
	}

	table := agg.Finalize()

	if table.Pathc == 0 {
		if flags.Has(option.NOCHECK) || (flags.Has(option.NOMAGIC) && !magChar) {
			return literalResult(pattern, &cfg, magChar), nil
		}

		return newResult(table, magChar), ErrNoMatch
	}

	return newResult(table, magChar), nil
}

// resolveTilde applies the tilde-expansion rule ahead of everything else.
// tildeFailed is true only under TILDE_CHECK when the
// lookup could not resolve a home directory, in which case the whole call
// must report no-match.
func resolveTilde(p string, flags Flag, cfg *config) (resolved string, tildeFailed bool) {
	if !flags.Has(option.TILDE) || !strings.HasPrefix(p, "~") {
		return p, false
	}

	expanded := p
	if cfg.tildeLookup != nil {
		expanded = pattern.ExpandTilde(p, cfg.tildeLookup)
	} else {
		expanded = pattern.Expand(p)
	}

	if expanded == p && flags.Has(option.TILDECHECK) {
		return p, true
	}

	return expanded, false
}

func buildEngine(flags Flag, cfg *config) *traverse.Engine {
	ignoreFilter := cfg.ignore

	if flags.Has(option.GITIGNORE) && ignoreFilter == nil && len(cfg.ignoreLines) > 0 {
		ignoreFilter = ignorefs.New(cfg.ignoreLines...)
	}

	return &traverse.Engine{
		Fs:    cfg.fs,
		Flags: flags,
		FnFlags: fnmatch.Flags{
			Pathname: true,
			Escapes:  !flags.Has(option.NOESCAPE),
			Extglob:  flags.Has(option.EXTGLOB),
			CaseFold: cfg.caseFold,
		},
		Ignore:  ignoreFilterOrNil(flags, ignoreFilter),
		OnError: cfg.onError,
	}
}

func ignoreFilterOrNil(flags Flag, f *ignorefs.Filter) *ignorefs.Filter {
	if !flags.Has(option.GITIGNORE) {
		return nil
	}

	return f
}

func mapEngineError(err error) error {
	if err == option.ErrAborted {
		return ErrAborted
	}

	return err
}

func tableOf(r *Result) *result.Table {
	if r == nil {
		return nil
	}

	return r.table
}

// literalResult builds the single-pattern result NOCHECK/NOMAGIC specify:
// the pattern itself, unresolved, as the sole match.
func literalResult(p string, cfg *config, magChar bool) *Result {
	agg := result.NewAggregator(cfg.offs, true)
	agg.Add(p)

	return newResult(agg.Finalize(), magChar)
}

func noMatchResult(rawPattern string, flags Flag, cfg *config) (*Result, error) {
	if flags.Has(option.NOCHECK) {
		return literalResult(rawPattern, cfg, false), nil
	}

	agg := result.NewAggregator(cfg.offs, true)

	return newResult(agg.Finalize(), false), ErrNoMatch
}
