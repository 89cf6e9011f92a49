// Package traverse implements the traversal engine: a glob_single dispatch
// across literal stat, braced single-walk, simple extension, recursive
// "**", per-component wildcard expansion, and single-directory
// fall-through, plus the hidden-file, mark-directory, depth-cap, and
// per-directory error-callback rules that apply across all of them.
//
// It is grounded on CiscoM31-doublestar/glob.go's doGlob/globDir family for
// the overall per-component descent shape, generalized with afero.Fs in
// place of a bare fs.FS so a caller can redirect the whole traversal onto
// an in-memory, network, or otherwise caller-supplied filesystem —
// callback-driven directory iteration rather than a bare-stdlib walk.
// afero.Fs already exposes exactly the open/readdir/close shape that needs,
// so no further indirection is introduced.
package traverse

import (
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/dmtrKovalenko/zlob/brace"
	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/ignorefs"
	"github.com/dmtrKovalenko/zlob/internal/simdbytes"
	"github.com/dmtrKovalenko/zlob/option"
	"github.com/dmtrKovalenko/zlob/pattern"
	"github.com/dmtrKovalenko/zlob/result"
)

// recursionCap is the fixed "**" depth limit: a silent cutoff, not an
// error.
const recursionCap = 100

// Engine drives one Glob call's directory traversal.
type Engine struct {
	Fs      afero.Fs
	Flags   option.Flag
	FnFlags fnmatch.Flags
	Ignore  *ignorefs.Filter
	OnError option.ErrorFunc
}

// DirEntry is one directory listing result, independent of the underlying
// afero.Fs implementation's os.FileInfo.
type DirEntry struct {
	Name  string
	IsDir bool
}

// GlobSingle matches one (already tilde-expanded) pattern against the
// filesystem and appends every match to agg.
func (e *Engine) GlobSingle(rawPattern string, agg *result.Aggregator) error {
	directoriesOnly := rawPattern != "/" && strings.HasSuffix(rawPattern, "/")
	trimmed := strings.TrimSuffix(rawPattern, "/")

	if trimmed == "" {
		trimmed = "/"
	}

	if e.Flags.Has(option.BRACE) && brace.HasBraces(trimmed) {
		return e.globBraced(trimmed, directoriesOnly, agg)
	}

	hasAnyMeta := simdbytes.HasWildcards([]byte(trimmed)) ||
		(e.FnFlags.Extglob && fnmatch.HasExtglobConstruct([]byte(trimmed)))

	if !hasAnyMeta {
		return e.globLiteral(trimmed, directoriesOnly, agg)
	}

	info := pattern.Analyze(trimmed, e.FnFlags)

	if info.HasRecursive && e.Flags.Has(option.DOUBLESTARRECURSIVE) {
		return e.globRecursive(trimmed, directoriesOnly, agg)
	}

	if info.HasSimpleExt && info.FixedComponentCount == info.MaxDepth-1 && !e.FnFlags.Extglob && !e.FnFlags.CaseFold {
		return e.globSimpleExtension(info, directoriesOnly, agg)
	}

	// Steps 5 ("wildcard-in-directory but no **") and 6 ("single-directory
	// fall-through") are both instances of the same per-component descent:
	// step 6 is simply what step 5 degenerates to when every component but
	// the last is literal, so one implementation covers both.
	root, components := splitRoot(trimmed)

	return e.matchComponents(root, components, func(p string, isDir bool) error {
		return e.emit(p, isDir, directoriesOnly, agg)
	})
}

// globLiteral is step 1: a pattern with no wildcards, no brace, no tilde,
// no extglob resolves with exactly one stat call.
func (e *Engine) globLiteral(pathStr string, directoriesOnly bool, agg *result.Aggregator) error {
	info, err := e.Fs.Stat(pathStr)
	if err != nil {
		return nil
	}

	return e.emit(pathStr, info.IsDir(), directoriesOnly, agg)
}

// globSimpleExtension is step 3: "src/foo/*.ext" opens the literal parent
// directory once and runs the suffix matcher over every entry instead of
// invoking the general kernel per candidate.
func (e *Engine) globSimpleExtension(info pattern.Info, directoriesOnly bool, agg *result.Aggregator) error {
	dir := info.LiteralPrefix

	switch {
	case info.IsAbsolute:
		dir = "/" + dir
	case dir == "":
		dir = "."
	}

	entries, err := e.listDir(dir)
	if err != nil {
		return e.handleDirError(dir, err)
	}

	suffix := simdbytes.NewSuffixMatcher([]byte(info.SimpleExtension))

	for _, ent := range entries {
		if isHiddenName(ent.Name) && !e.Flags.Has(option.PERIOD) {
			continue
		}

		if !suffix.Match([]byte(ent.Name)) {
			continue
		}

		if err := e.emit(joinPath(dir, ent.Name), ent.IsDir, directoriesOnly, agg); err != nil {
			return err
		}
	}

	return nil
}

// globBraced expands every brace group (the Cartesian-product fallback)
// when the single-walk optimization does not apply, and otherwise resolves
// the final component's alternatives against one directory listing
// ("single_walk" mode): both are required to produce identical results, so
// the dispatch below is purely a performance choice.
func (e *Engine) globBraced(trimmed string, directoriesOnly bool, agg *result.Aggregator) error {
	if done, err := e.globBracedSingleWalk(trimmed, directoriesOnly, agg); done {
		return err
	}

	for _, expanded := range brace.Expand(trimmed) {
		if err := e.GlobSingle(expanded, agg); err != nil {
			return err
		}
	}

	return nil
}

// globBracedSingleWalk attempts the single-walk optimization: one
// directory listing, each entry tried against every brace alternative.
// done is false when the pattern's shape does not qualify (more than one
// brace group, an alternative containing '/', or a wildcard-containing
// directory prefix), and the caller falls back to full Cartesian
// expansion.
func (e *Engine) globBracedSingleWalk(trimmed string, directoriesOnly bool, agg *result.Aggregator) (done bool, err error) {
	prefix, alts, suffix, ok := brace.SingleWalkAlternatives(trimmed)
	if !ok || strings.Contains(suffix, "/") {
		return false, nil
	}

	dir, lastPrefix := splitLastComponent(prefix)
	if dir == "" {
		dir = "."
	}

	if simdbytes.HasWildcards([]byte(dir)) {
		return false, nil
	}

	entries, listErr := e.listDir(dir)
	if listErr != nil {
		return true, e.handleDirError(dir, listErr)
	}

	for _, ent := range entries {
		hidden := isHiddenName(ent.Name) && !e.Flags.Has(option.PERIOD)

		matched := false

		for _, alt := range alts {
			full := lastPrefix + alt + suffix
			if hidden && !strings.HasPrefix(full, ".") {
				continue
			}

			if fnmatch.Match([]byte(full), []byte(ent.Name), e.FnFlags) {
				matched = true

				break
			}
		}

		if !matched {
			continue
		}

		if err := e.emit(joinPath(dir, ent.Name), ent.IsDir, directoriesOnly, agg); err != nil {
			return true, err
		}
	}

	return true, nil
}

// globRecursive is step 4: split pattern into pre-doublestar and
// post-doublestar component lists, select pre-doublestar roots, then walk
// every descendant directory of each root (depth-capped) trying the
// post-doublestar components from there.
func (e *Engine) globRecursive(trimmed string, directoriesOnly bool, agg *result.Aggregator) error {
	root, components := splitRoot(trimmed)

	dsIdx := -1

	for i, c := range components {
		if c == "**" {
			dsIdx = i

			break
		}
	}

	pre := components[:dsIdx]
	post := components[dsIdx+1:]

	var roots []string

	if len(pre) == 0 {
		roots = []string{root}
	} else {
		err := e.matchComponents(root, pre, func(p string, isDir bool) error {
			if isDir {
				roots = append(roots, p)
			}

			return nil
		})
		if err != nil {
			return err
		}
	}

	for _, r := range roots {
		err := e.walkRecursive(r, func(dir string) error {
			return e.matchComponents(dir, post, func(p string, isDir bool) error {
				return e.emit(p, isDir, directoriesOnly, agg)
			})
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// matchComponents descends root component by component. A literal
// component is stat-tested directly; a wildcard component lists its parent
// directory and tries every entry. Reaching the end of components invokes
// visit on the accumulated path.
func (e *Engine) matchComponents(root string, components []string, visit func(path string, isDir bool) error) error {
	if len(components) == 0 {
		info, err := e.Fs.Stat(root)
		if err != nil {
			return nil
		}

		return visit(root, info.IsDir())
	}

	comp := components[0]
	rest := components[1:]

	if !simdbytes.HasWildcards([]byte(comp)) && !(e.FnFlags.Extglob && fnmatch.HasExtglobConstruct([]byte(comp))) {
		child := joinPath(root, comp)

		info, err := e.Fs.Stat(child)
		if err != nil {
			return nil
		}

		if len(rest) > 0 && !info.IsDir() {
			return nil
		}

		return e.matchComponents(child, rest, visit)
	}

	ctx := pattern.NewContext([]byte(comp), e.FnFlags)

	entries, err := e.listDir(root)
	if err != nil {
		return e.handleDirError(root, err)
	}

	if ctx.StartsWithDot {
		entries = append([]DirEntry{{Name: ".", IsDir: true}, {Name: "..", IsDir: true}}, entries...)
	}

	for _, ent := range entries {
		if isHiddenName(ent.Name) && !e.Flags.Has(option.PERIOD) && !ctx.StartsWithDot {
			continue
		}

		if !ctx.Match([]byte(ent.Name)) {
			continue
		}

		child := joinPath(root, ent.Name)

		if len(rest) > 0 && !ent.IsDir {
			continue
		}

		if err := e.matchComponents(child, rest, visit); err != nil {
			return err
		}
	}

	return nil
}

// walkRecursive visits root and then every descendant directory
// depth-first, up to recursionCap levels, pruning directories a gitignore
// filter marks as skippable and (unless PERIOD is set) hidden directories.
func (e *Engine) walkRecursive(root string, visit func(dir string) error) error {
	return e.walkRecursiveAt(root, 0, visit)
}

func (e *Engine) walkRecursiveAt(dir string, depth int, visit func(string) error) error {
	if err := visit(dir); err != nil {
		return err
	}

	if depth >= recursionCap {
		return nil
	}

	entries, err := e.listDir(dir)
	if err != nil {
		return e.handleDirError(dir, err)
	}

	for _, ent := range entries {
		if !ent.IsDir {
			continue
		}

		if isHiddenName(ent.Name) && !e.Flags.Has(option.PERIOD) {
			continue
		}

		child := joinPath(dir, ent.Name)

		if e.Ignore != nil && e.Ignore.ShouldSkipDirectory(ignoreRelPath(child)) {
			continue
		}

		if err := e.walkRecursiveAt(child, depth+1, visit); err != nil {
			return err
		}
	}

	return nil
}

// emit applies ONLYDIR filtering, gitignore exclusion, and MARK
// trailing-slash policy before appending a match.
func (e *Engine) emit(p string, isDir bool, directoriesOnly bool, agg *result.Aggregator) error {
	if directoriesOnly && !isDir {
		return nil
	}

	if e.Flags.Has(option.ONLYDIR) && !isDir {
		return nil
	}

	if e.Ignore != nil && e.Ignore.IsIgnored(ignoreRelPath(p), isDir) {
		return nil
	}

	if isDir && e.Flags.Has(option.MARK) {
		p += "/"
	}

	agg.Add(p)

	return nil
}

func (e *Engine) listDir(dir string) ([]DirEntry, error) {
	f, err := e.Fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}

	out := make([]DirEntry, len(infos))
	for i, fi := range infos {
		out[i] = DirEntry{Name: fi.Name(), IsDir: fi.IsDir()}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// handleDirError implements per-directory error routing: the callback (if
// any) decides, then the ERR flag decides the default.
func (e *Engine) handleDirError(dir string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if e.OnError != nil && e.OnError(dir, err) != 0 {
		return option.ErrAborted
	}

	if e.Flags.Has(option.ERR) {
		return option.ErrAborted
	}

	return nil
}

func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

func splitRoot(p string) (root string, components []string) {
	if strings.HasPrefix(p, "/") {
		root = "/"
		p = strings.TrimPrefix(p, "/")
	} else {
		root = "."
	}

	if p == "" {
		return root, nil
	}

	return root, strings.Split(p, "/")
}

func splitLastComponent(p string) (dir, last string) {
	idx := strings.LastIndexByte(p, '/')
	if idx < 0 {
		return "", p
	}

	return p[:idx], p[idx+1:]
}

func joinPath(root, name string) string {
	switch root {
	case ".":
		return name
	case "/":
		return "/" + name
	default:
		return root + "/" + name
	}
}

// ignoreRelPath normalizes a traversal path into the slash-relative form
// ignorefs.Filter expects, stripping a leading "./" and "/".
func ignoreRelPath(p string) string {
	p = strings.TrimPrefix(p, "./")

	return strings.TrimPrefix(p, "/")
}
