// Package pattern compiles one pattern segment into a small tagged
// template plus, for the general case, the byte-level data the fnmatch
// kernel needs. It is grounded on idelchi-go-gitignore's gitignore.go
// pattern struct (which precomputes simpleLength/hasMeta at compile time
// rather than on every match), generalized to a richer template taxonomy,
// and on coregx-coregex's batch-scan primitives for the suffix fast path.
package pattern

import (
	"bytes"

	"github.com/dmtrKovalenko/zlob/fnmatch"
	"github.com/dmtrKovalenko/zlob/internal/simdbytes"
)

// Template classifies a compiled pattern into one of a handful of shapes
// that admit a fast match path without invoking the general fnmatch
// backtracker at all.
type Template int

const (
	// TemplateNone: no fast path applies; fall back to fnmatch.Match.
	TemplateNone Template = iota
	// TemplateLiteral: pattern contains no wildcard atoms at all.
	TemplateLiteral
	// TemplateStarOnly: pattern is exactly "*".
	TemplateStarOnly
	// TemplateStarDotExt: pattern is "*" followed by a literal suffix that
	// begins with '.', e.g. "*.go".
	TemplateStarDotExt
	// TemplatePrefixStar: pattern is a literal prefix followed by a
	// trailing "*" with nothing after it, e.g. "foo*".
	TemplatePrefixStar
	// TemplatePrefixStarExt: pattern is literal-prefix + "*" + literal
	// suffix, e.g. "foo*.bar".
	TemplatePrefixStarExt
	// TemplateBracketWithAffixes: pattern is an optional literal prefix,
	// exactly one "[...]" construct, and an optional literal suffix.
	TemplateBracketWithAffixes
)

// Context is a compiled pattern segment, reusable across every candidate
// name tested against the same pattern — the compilation work (tokenizing,
// classifying, building the suffix matcher) happens once per Context, not
// once per candidate.
type Context struct {
	Pattern []byte
	Flags   fnmatch.Flags

	HasWildcards  bool
	StartsWithDot bool
	IsDotOrDotDot bool

	RequiredLastByte    byte
	HasRequiredLastByte bool

	Template       Template
	TemplatePrefix []byte
	TemplateSuffix []byte
	BracketBitmap  fnmatch.Bitmap256
	BracketNegated bool

	suffixMatcher *simdbytes.SuffixMatcher
}

// NewContext compiles pattern under flags.
func NewContext(pattern []byte, flags fnmatch.Flags) *Context {
	c := &Context{
		Pattern:       append([]byte(nil), pattern...),
		Flags:         flags,
		HasWildcards:  simdbytes.HasWildcards(pattern),
		StartsWithDot: len(pattern) > 0 && pattern[0] == '.',
		IsDotOrDotDot: string(pattern) == "." || string(pattern) == "..",
	}

	if flags.Extglob && fnmatch.HasExtglobConstruct(pattern) {
		// An extglob construct can match a variable-length, variable-content
		// run of text, so neither the template fast paths nor the
		// required-last-byte shortcut (both of which assume a fixed literal
		// tail) are sound here. Always defer to the general kernel.
		c.Template = TemplateNone

		return c
	}

	if flags.Escapes && bytes.IndexByte(pattern, '\\') >= 0 {
		// A backslash changes what the following byte means (a literal
		// rather than a metacharacter), and the templates classify purely on
		// atom shape without distinguishing an escaped byte from a bare one.
		// Defer to the general kernel, which already implements escape
		// semantics correctly.
		c.Template = TemplateNone

		return c
	}

	atoms := tokenize(pattern, flags)
	c.classify(atoms)
	c.computeRequiredLastByte(atoms)

	return c
}

// Match reports whether name satisfies this compiled pattern. It tries the
// template fast path first and falls back to the general fnmatch kernel.
func (c *Context) Match(name []byte) bool {
	if c.HasRequiredLastByte {
		if len(name) == 0 {
			return false
		}

		last := name[len(name)-1]
		if c.Flags.CaseFold {
			last = foldByteExported(last)
		}

		if last != c.requiredLastByteFolded() {
			return false
		}
	}

	switch c.Template {
	case TemplateLiteral:
		return matchesLiteral(c.Pattern, name, c.Flags)
	case TemplateStarOnly:
		return !c.Flags.Pathname || bytes.IndexByte(name, '/') < 0
	case TemplateStarDotExt, TemplatePrefixStarExt:
		prefixLen, suffixLen := len(c.TemplatePrefix), len(c.TemplateSuffix)

		return len(name) >= prefixLen+suffixLen &&
			matchesLiteral(c.TemplatePrefix, name[:prefixLen], c.Flags) &&
			(c.Flags.CaseFold && matchesLiteral(c.TemplateSuffix, name[len(name)-suffixLen:], c.Flags) ||
				!c.Flags.CaseFold && c.suffixMatcher.Match(name)) &&
			(!c.Flags.Pathname || bytes.IndexByte(name[prefixLen:len(name)-suffixLen], '/') < 0)
	case TemplatePrefixStar:
		prefixLen := len(c.TemplatePrefix)

		return len(name) >= prefixLen &&
			matchesLiteral(c.TemplatePrefix, name[:prefixLen], c.Flags) &&
			(!c.Flags.Pathname || bytes.IndexByte(name[prefixLen:], '/') < 0)
	case TemplateBracketWithAffixes:
		return c.matchBracketWithAffixes(name)
	default:
		return fnmatch.Match(c.Pattern, name, c.Flags)
	}
}

func (c *Context) matchBracketWithAffixes(name []byte) bool {
	prefixLen, suffixLen := len(c.TemplatePrefix), len(c.TemplateSuffix)
	if len(name) != prefixLen+1+suffixLen {
		return false
	}

	if !matchesLiteral(c.TemplatePrefix, name[:prefixLen], c.Flags) {
		return false
	}

	if !matchesLiteral(c.TemplateSuffix, name[prefixLen+1:], c.Flags) {
		return false
	}

	b := name[prefixLen]
	if c.Flags.CaseFold {
		b = foldByteExported(b)
	}

	if c.Flags.Pathname && b == '/' {
		return false
	}

	return c.BracketBitmap.Test(b) != c.BracketNegated
}

func matchesLiteral(pattern, name []byte, flags fnmatch.Flags) bool {
	if len(pattern) != len(name) {
		return false
	}

	if !flags.CaseFold {
		for i := range pattern {
			if pattern[i] != name[i] {
				return false
			}
		}

		return true
	}

	for i := range pattern {
		if foldByteExported(pattern[i]) != foldByteExported(name[i]) {
			return false
		}
	}

	return true
}

func (c *Context) classify(atoms []atom) {
	switch {
	case len(atoms) == 0:
		c.Template = TemplateLiteral

	case len(atoms) == 1 && atoms[0].kind == atomLiteral:
		c.Template = TemplateLiteral

	case len(atoms) == 1 && atoms[0].kind == atomStar:
		c.Template = TemplateStarOnly

	case len(atoms) == 2 && atoms[0].kind == atomStar && atoms[1].kind == atomLiteral:
		suffix := atoms[1].literal
		c.TemplateSuffix = suffix
		c.suffixMatcher = simdbytes.NewSuffixMatcher(suffix)

		if len(suffix) > 0 && suffix[0] == '.' {
			c.Template = TemplateStarDotExt
		} else {
			c.Template = TemplatePrefixStarExt // empty prefix, general suffix case
		}

	case len(atoms) == 2 && atoms[0].kind == atomLiteral && atoms[1].kind == atomStar:
		c.Template = TemplatePrefixStar
		c.TemplatePrefix = atoms[0].literal

	case len(atoms) == 3 && atoms[0].kind == atomLiteral && atoms[1].kind == atomStar && atoms[2].kind == atomLiteral:
		c.Template = TemplatePrefixStarExt
		c.TemplatePrefix = atoms[0].literal
		c.TemplateSuffix = atoms[2].literal
		c.suffixMatcher = simdbytes.NewSuffixMatcher(atoms[2].literal)

	case len(atoms) == 1 && atoms[0].kind == atomBracket:
		c.Template = TemplateBracketWithAffixes
		c.BracketBitmap = atoms[0].bitmap
		c.BracketNegated = atoms[0].negated

	case len(atoms) == 2 && atoms[0].kind == atomLiteral && atoms[1].kind == atomBracket:
		c.Template = TemplateBracketWithAffixes
		c.TemplatePrefix = atoms[0].literal
		c.BracketBitmap = atoms[1].bitmap
		c.BracketNegated = atoms[1].negated

	case len(atoms) == 2 && atoms[0].kind == atomBracket && atoms[1].kind == atomLiteral:
		c.Template = TemplateBracketWithAffixes
		c.TemplateSuffix = atoms[1].literal
		c.BracketBitmap = atoms[0].bitmap
		c.BracketNegated = atoms[0].negated

	case len(atoms) == 3 && atoms[0].kind == atomLiteral && atoms[1].kind == atomBracket && atoms[2].kind == atomLiteral:
		c.Template = TemplateBracketWithAffixes
		c.TemplatePrefix = atoms[0].literal
		c.TemplateSuffix = atoms[2].literal
		c.BracketBitmap = atoms[1].bitmap
		c.BracketNegated = atoms[1].negated

	default:
		c.Template = TemplateNone
	}
}

// computeRequiredLastByte determines, when possible, the one byte any
// matching name must end with — letting callers reject a candidate with a
// single byte comparison before ever invoking the kernel.
func (c *Context) computeRequiredLastByte(atoms []atom) {
	if len(atoms) == 0 {
		return
	}

	last := atoms[len(atoms)-1]
	if last.kind != atomLiteral || len(last.literal) == 0 {
		return
	}

	c.RequiredLastByte = last.literal[len(last.literal)-1]
	c.HasRequiredLastByte = true
}

func (c *Context) requiredLastByteFolded() byte {
	if c.Flags.CaseFold {
		return foldByteExported(c.RequiredLastByte)
	}

	return c.RequiredLastByte
}

func foldByteExported(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}

	return b
}
