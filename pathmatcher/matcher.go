// Package pathmatcher runs the same pattern engine traverse.Engine drives
// over a filesystem instead over a caller-supplied list of candidate
// paths. It is grounded on WoozyMasta-pathrules's Matcher —
// compile-ordered-rules-once,
// decide-many-times, last-match-wins — generalized from its fixed
// include/exclude Action to zlob's richer glob semantics (brace groups,
// extglob, case folding) by compiling each rule's pattern through
// pattern.Context / brace.Expand instead of pathrules' own gitignore-style
// compiler.
package pathmatcher

import (
	"strings"

	"github.com/dmtrKovalenko/zlob/brace"
	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/internal/simdbytes"
	"github.com/dmtrKovalenko/zlob/pattern"
)

// Action mirrors WoozyMasta-pathrules' Action: a rule either includes or
// excludes a path when it matches.
type Action uint8

const (
	ActionExclude Action = iota + 1
	ActionInclude
)

// Rule is one user-visible pattern rule evaluated against caller-supplied
// paths rather than a filesystem.
type Rule struct {
	Pattern string
	Action  Action
}

// compiledRule is a Rule with its pattern pre-compiled: either a single
// pattern.Context, or — when the pattern contains a brace group — one
// Context per expanded alternative, tried in order until one matches.
type compiledRule struct {
	source        Rule
	alternatives  []*pattern.Context
	suffixLiteral string
	hasSuffix     bool
}

// Options controls Matcher compilation and decision behavior.
type Options struct {
	Flags         fnmatch.Flags
	DefaultAction Action
}

func (o *Options) applyDefaults() {
	if o.DefaultAction != ActionExclude && o.DefaultAction != ActionInclude {
		o.DefaultAction = ActionInclude
	}
}

// Matcher evaluates path decisions against compiled ordered rules, without
// ever touching a filesystem — every candidate is supplied by the caller.
type Matcher struct {
	compiled      []compiledRule
	defaultAction Action
	flags         fnmatch.Flags

	// literalIndex is set only when the whole rule set has no glob
	// metacharacters at all and case folding can't merge distinct entries,
	// letting Decide skip the pattern engine entirely for a plain allow/deny
	// list.
	literalIndex map[string]int
}

// New compiles rules (evaluated in order, last match wins) into a Matcher.
func New(rules []Rule, opts Options) *Matcher {
	opts.applyDefaults()

	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		compiled = append(compiled, compileRule(r, opts.Flags))
	}

	m := &Matcher{compiled: compiled, defaultAction: opts.DefaultAction, flags: opts.Flags}

	if !opts.Flags.CaseFold && !hasAnyWildcard(rules) {
		m.literalIndex = make(map[string]int, len(rules))
		for i, r := range rules {
			m.literalIndex[r.Pattern] = i // later rules overwrite, preserving last-match-wins
		}
	}

	return m
}

// NewSingle compiles one glob pattern into a Matcher that simply tests
// whether a candidate path matches it — the common case of a pattern
// engine driven over a caller-supplied path list.
func NewSingle(pat string, flags fnmatch.Flags) *Matcher {
	return New([]Rule{{Pattern: pat, Action: ActionInclude}}, Options{Flags: flags, DefaultAction: ActionExclude})
}

func compileRule(r Rule, flags fnmatch.Flags) compiledRule {
	cr := compiledRule{source: r}

	if brace.HasBraces(r.Pattern) {
		for _, alt := range brace.Expand(r.Pattern) {
			cr.alternatives = append(cr.alternatives, pattern.NewContext([]byte(alt), flags))
		}
	} else {
		cr.alternatives = []*pattern.Context{pattern.NewContext([]byte(r.Pattern), flags)}
	}

	// A literal suffix shared by every alternative lets Decide reject a
	// candidate with one cheap substring check before running the full
	// pattern engine over it. The check is case-sensitive, so it is not
	// used under CaseFold.
	if suffix, ok := commonRequiredSuffix(cr.alternatives); ok && !flags.CaseFold {
		cr.suffixLiteral = suffix
		cr.hasSuffix = true
	}

	return cr
}

// commonRequiredSuffix returns the literal template suffix (TemplateSuffix)
// that every alternative shares, when one exists. It is
// deliberately conservative: it only fires when every alternative exposes
// the exact same non-empty literal template suffix, since that is the only
// case a shared pre-filter can reject all of them at once.
func commonRequiredSuffix(ctxs []*pattern.Context) (string, bool) {
	if len(ctxs) == 0 {
		return "", false
	}

	first := string(ctxs[0].TemplateSuffix)
	if first == "" {
		return "", false
	}

	for _, c := range ctxs[1:] {
		if string(c.TemplateSuffix) != first {
			return "", false
		}
	}

	return first, true
}

func (cr *compiledRule) matches(path string) bool {
	if cr.hasSuffix && !strings.HasSuffix(path, cr.suffixLiteral) {
		return false
	}

	name := []byte(path)
	for _, alt := range cr.alternatives {
		if alt.Match(name) {
			return true
		}
	}

	return false
}

// MatchResult is a deterministic decision produced by Decide.
type MatchResult struct {
	Included  bool
	Matched   bool
	RuleIndex int
}

// Decide returns the include/exclude decision for one candidate path: the
// last rule that matches wins, and the configured DefaultAction applies
// when nothing matched.
func (m *Matcher) Decide(path string) MatchResult {
	res := MatchResult{Included: m.defaultAction == ActionInclude, RuleIndex: -1}

	if m.literalIndex != nil {
		if i, ok := m.literalIndex[path]; ok {
			res.Matched = true
			res.RuleIndex = i
			res.Included = m.compiled[i].source.Action == ActionInclude
		}

		return res
	}

	for i := range m.compiled {
		if !m.compiled[i].matches(path) {
			continue
		}

		res.Matched = true
		res.RuleIndex = i
		res.Included = m.compiled[i].source.Action == ActionInclude
	}

	return res
}

// Match reports whether path is matched by any compiled rule at all,
// independent of include/exclude polarity — the shape NewSingle's callers
// want.
func (m *Matcher) Match(path string) bool {
	return m.Decide(path).Matched
}

// Included reports whether path is included by decision policy.
func (m *Matcher) Included(path string) bool {
	return m.Decide(path).Included
}

// Filter returns the subset of paths included by decision policy,
// preserving input order. A cheap wildcard-prefilter (simdbytes.HasWildcards
// against none of the candidates, only the rule patterns) is not applicable
// here since candidates are arbitrary strings, not filesystem entries; the
// per-rule suffix check inside compiledRule.matches is where the fast
// rejection happens instead.
func (m *Matcher) Filter(paths []string) []string {
	out := make([]string, 0, len(paths))

	for _, p := range paths {
		if m.Included(p) {
			out = append(out, p)
		}
	}

	return out
}

// hasAnyWildcard reports whether any rule's pattern contains a glob
// metacharacter, a brace group, an extglob construct or a backslash,
// letting New decide whether rules form a pure literal allow/deny list
// eligible for the literalIndex fast path, mirroring pathrules'
// extensions.go fast path for plain suffix lists.
func hasAnyWildcard(rules []Rule) bool {
	for _, r := range rules {
		p := []byte(r.Pattern)
		if simdbytes.HasWildcards(p) || brace.HasBraces(r.Pattern) ||
			fnmatch.HasExtglobConstruct(p) || strings.IndexByte(r.Pattern, '\\') >= 0 {
			return true
		}
	}

	return false
}
