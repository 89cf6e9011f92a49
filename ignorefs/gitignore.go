// Package ignorefs implements the GITIGNORE flag: loading .gitignore-style
// rule files and exposing the two predicates the
// traversal engine needs — "is this candidate excluded" and "can this
// directory be pruned entirely" — without the engine itself knowing
// anything about last-match-wins negation or ancestor-exclusion rules.
//
// It is adapted directly from idelchi-go-gitignore's gitignore.go and
// wildmatch.go: the same last-match-wins / negation / ancestor-exclusion
// algorithm, rewired onto this module's own fnmatch kernel (fnmatch.Match)
// instead of a standalone wildmatch package, since fnmatch already
// generalizes wildmatch.go's dowild for every caller in this module.
package ignorefs

import (
	"bufio"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/dmtrKovalenko/zlob/fnmatch"
)

// ruleFlag is a bitmask describing properties of one compiled rule line.
type ruleFlag uint16

const (
	flagNegative ruleFlag = 1 << iota
	flagDirOnly
	flagNoDir
	flagEndsWith
)

// rule is the compiled representation of a single ignore-file line.
type rule struct {
	original      string
	text          string
	textlen       int
	nowildcardlen int
	flags         ruleFlag
}

// Options controls Filter-wide matching behavior.
type Options struct {
	// CaseFold enables ASCII-only case-insensitive matching.
	CaseFold bool
}

// Filter holds a sequence of compiled ignore rules in input order; later
// rules override earlier ones for a given path, exactly as .gitignore
// dictates.
type Filter struct {
	rules []rule
	opts  Options
}

// New compiles ignore-file lines with default Options.
func New(lines ...string) *Filter {
	return NewOptions(Options{}, lines...)
}

// NewOptions compiles ignore-file lines with explicit Options.
func NewOptions(opt Options, lines ...string) *Filter {
	rules := make([]rule, 0, len(lines))

	for _, line := range lines {
		if r := parseRule(line); r != nil {
			rules = append(rules, *r)
		}
	}

	return &Filter{rules: rules, opts: opt}
}

// NewFromFile reads an ignore file (e.g. ".gitignore") through fs — the
// traversal engine's afero.Fs abstraction — and compiles its lines. A
// missing file yields an empty, always-permissive Filter rather than an
// error, matching the common "no .gitignore present" case callers expect
// to treat identically to an empty one.
func NewFromFile(fs afero.Fs, filePath string) (*Filter, error) {
	f, err := fs.Open(filePath)
	if err != nil {
		if afero.IsNotExist(fs, filePath) {
			return New(), nil
		}

		return nil, err
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(lines...), nil
}

// Append compiles and appends more rule lines, preserving evaluation order.
func (fl *Filter) Append(lines ...string) {
	for _, line := range lines {
		if r := parseRule(line); r != nil {
			fl.rules = append(fl.rules, *r)
		}
	}
}

// Decision is a detailed verdict mirroring `git check-ignore -v`: which
// rule (if any) decided the outcome.
type Decision struct {
	Ignored bool
	Rule    string
}

// Match evaluates pathname (slash-separated, relative to the traversal
// root) against every compiled rule in reverse order, applying gitignore's
// last-match-wins and ancestor-exclusion semantics.
func (fl *Filter) Match(pathname string, isDir bool) Decision {
	if len(fl.rules) == 0 || pathname == "" || strings.HasPrefix(pathname, "/") {
		return Decision{}
	}

	pathname = path.Clean(pathname)

	parentExcluded, parentRule := fl.ancestorExcluded(pathname)

	for i := len(fl.rules) - 1; i >= 0; i-- {
		r := fl.rules[i]

		if !fl.matches(r, pathname, isDir) {
			continue
		}

		if r.flags&flagNegative != 0 {
			if pathname == "." {
				continue
			}

			if pathname == ".." {
				if parentExcluded {
					return Decision{Ignored: true, Rule: parentRule}
				}

				return Decision{Ignored: false, Rule: r.original}
			}

			if parentExcluded {
				return Decision{Ignored: true, Rule: parentRule}
			}

			return Decision{Ignored: false, Rule: r.original}
		}

		return Decision{Ignored: true, Rule: r.original}
	}

	if parentExcluded {
		return Decision{Ignored: true, Rule: parentRule}
	}

	return Decision{}
}

// IsIgnored is the predicate the traversal engine calls for every
// candidate entry.
func (fl *Filter) IsIgnored(pathname string, isDir bool) bool {
	return fl.Match(pathname, isDir).Ignored
}

// ShouldSkipDirectory is the predicate the traversal engine calls before
// descending into a directory at all — pruning it out of the walk entirely
// rather than merely excluding it from results.
func (fl *Filter) ShouldSkipDirectory(pathname string) bool {
	return fl.IsIgnored(pathname, true)
}

func (fl *Filter) matchRooted(r rule, pathname string, isDir bool) bool {
	if r.flags&flagDirOnly != 0 && !isDir {
		return false
	}

	pat := r.text[1:]
	text := pathname

	lit := r.nowildcardlen
	if lit > 0 {
		lit--
	}

	if lit < 0 {
		lit = 0
	}

	if lit > len(pat) {
		lit = len(pat)
	}

	if lit > len(text) || pat[:lit] != text[:lit] {
		return false
	}

	pat = pat[lit:]
	text = text[lit:]

	if r.nowildcardlen == r.textlen {
		return text == ""
	}

	return fnmatch.Match([]byte(pat), []byte(text), fnmatch.Flags{Pathname: true, CaseFold: fl.opts.CaseFold})
}

func (fl *Filter) matches(r rule, pathname string, isDir bool) bool {
	if r.flags&flagDirOnly != 0 && !isDir {
		return false
	}

	if len(r.text) > 0 && r.text[0] == '/' {
		return fl.matchRooted(r, pathname, isDir)
	}

	if r.flags&flagNoDir != 0 {
		return fl.matchBasename(path.Base(pathname), r)
	}

	pat := r.text
	text := pathname

	if r.nowildcardlen > 0 && r.nowildcardlen <= len(pat) && r.nowildcardlen <= len(text) {
		if pat[:r.nowildcardlen] != text[:r.nowildcardlen] {
			return false
		}

		pat = pat[r.nowildcardlen:]
		text = text[r.nowildcardlen:]
	} else if r.nowildcardlen > len(text) {
		return false
	}

	if r.nowildcardlen == r.textlen {
		return pat == text
	}

	return fnmatch.Match([]byte(pat), []byte(text), fnmatch.Flags{Pathname: true, CaseFold: fl.opts.CaseFold})
}

func (fl *Filter) matchBasename(basename string, r rule) bool {
	if r.textlen == 0 {
		return basename == ""
	}

	if r.nowildcardlen == r.textlen {
		return basename == r.text
	}

	if r.flags&flagEndsWith != 0 && len(r.text) > 1 && r.text[0] == '*' {
		return strings.HasSuffix(basename, r.text[1:])
	}

	return fnmatch.Match([]byte(r.text), []byte(basename), fnmatch.Flags{CaseFold: fl.opts.CaseFold})
}

func (fl *Filter) ancestorExcluded(pathname string) (bool, string) {
	if pathname == "." {
		return false, ""
	}

	parts := strings.Split(pathname, "/")

	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		excluded := false
		decidingRule := ""

		for j := len(fl.rules) - 1; j >= 0; j-- {
			r := fl.rules[j]

			if !fl.matches(r, ancestor, true) {
				continue
			}

			if r.flags&flagNegative != 0 {
				excluded = false
				decidingRule = ""
			} else {
				excluded = true
				decidingRule = r.original
			}

			break
		}

		if excluded {
			return true, decidingRule
		}
	}

	return false, ""
}

func parseRule(line string) *rule {
	original := line

	if line == "" || (strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "\\#")) {
		return nil
	}

	r := &rule{original: original}

	switch {
	case strings.HasPrefix(line, "\\#"), strings.HasPrefix(line, "\\!"):
		line = line[1:]
	case strings.HasPrefix(line, "!"):
		r.flags |= flagNegative
		line = line[1:]
	}

	line = trimTrailingSpaces(line)
	if line == "" {
		return nil
	}

	if strings.HasSuffix(line, "/") {
		line = line[:len(line)-1]
		r.flags |= flagDirOnly
	}

	if !strings.Contains(line, "/") {
		r.flags |= flagNoDir
	}

	r.nowildcardlen = simpleLength(line)
	if r.nowildcardlen > len(line) {
		r.nowildcardlen = len(line)
	}

	if strings.HasPrefix(line, "*") && noWildcard(line[1:]) {
		r.flags |= flagEndsWith
	}

	r.text = line
	r.textlen = len(line)

	return r
}

func trimTrailingSpaces(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		backslashes := 0

		const checkOffset = 2
		for i := len(s) - checkOffset; i >= 0 && s[i] == '\\'; i-- {
			backslashes++
		}

		if backslashes%2 == 1 {
			break
		}

		s = s[:len(s)-1]
	}

	return s
}

func simpleLength(s string) int {
	for i := range len(s) {
		if isGlobSpecial(s[i]) {
			return i
		}
	}

	return len(s)
}

func isGlobSpecial(c byte) bool {
	return c == '*' || c == '?' || c == '[' || c == '\\'
}

func noWildcard(s string) bool {
	return simpleLength(s) == len(s)
}
