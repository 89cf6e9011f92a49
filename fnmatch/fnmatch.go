// Package fnmatch implements the core single-name/single-pattern matcher:
// a backtracking kernel with literal fast-forwarding, bracket-expression
// evaluation via a precomputed bitmap, and an extglob recursive
// sub-matcher. It is ported and generalized from
// idelchi-go-gitignore/wildmatch/wildmatch.go's dowild routine — the
// teacher's gitignore-only backtracker — into a general-purpose POSIX glob
// matcher usable outside the gitignore domain (arbitrary Pathname/Escapes/
// CaseFold/Extglob combinations, not just Git's fixed flag set).
package fnmatch

import "github.com/dmtrKovalenko/zlob/internal/simdbytes"

// Flags controls kernel behavior for one Match call.
type Flags struct {
	// Pathname: when true, '/' is only ever matched literally — '*', '?'
	// and bracket expressions never consume it. This is how a single path
	// component is matched against a single pattern component.
	Pathname bool
	// Escapes: when true, '\' escapes the following byte. Disabled by the
	// NOESCAPE flag at the zlob.Flag level.
	Escapes bool
	// Extglob: when true, `?() *() +() @() !()` are recognized.
	Extglob bool
	// CaseFold: ASCII-only case-insensitive comparison.
	CaseFold bool
}

// result codes mirror wildmatch.go's internal abort/no-match/match codes;
// kept unexported since Match only exposes a boolean.
type result int

const (
	noMatch result = iota
	match
	abortAll
	abortToDoubleStar
)

// Match reports whether name matches pattern under flags. This is the
// entry point used when no PatternContext has been compiled.
func Match(pattern, name []byte, flags Flags) bool {
	if flags.Extglob && hasExtglobConstruct(pattern) {
		return matchExtglobTop(pattern, name, flags)
	}

	return dowild(pattern, name, 0, 0, flags) == match
}

// dowild is the non-extglob backtracking kernel, a generalization of
// wildmatch.go's dowild: a run of '*' is coalesced and, when the next
// pattern byte is a plain literal, the search skips ahead to that byte.
// Git's "**" special case is not carried over: "**" behaves exactly like
// "*", so with Pathname set it never matches across '/'.
func dowild(pattern, text []byte, pi, ti int, flags Flags) result {
	for pi < len(pattern) {
		pCh := pattern[pi]

		if ti >= len(text) && pCh != '*' {
			return abortAll
		}

		var tCh byte
		if ti < len(text) {
			tCh = foldByte(text[ti], flags.CaseFold)
		}

		pCh = foldByte(pCh, flags.CaseFold)

		switch {
		case flags.Escapes && pCh == '\\':
			pi++
			if pi >= len(pattern) {
				return abortAll
			}

			next := foldByte(pattern[pi], flags.CaseFold)
			if ti >= len(text) || tCh != next {
				return noMatch
			}

			pi++
			ti++

		case pCh == '?':
			if ti >= len(text) {
				return noMatch
			}

			if flags.Pathname && text[ti] == '/' {
				return noMatch
			}

			pi++
			ti++

		case pCh == '*':
			res, newPi, newTi, done := matchStar(pattern, text, pi, ti, flags)
			if done {
				return res
			}

			pi, ti = newPi, newTi

		case pCh == '[':
			res, newPi, newTi, ok := matchBracketAt(pattern, text, pi, ti, flags)
			if !ok {
				// Unterminated bracket: treat '[' as a literal byte.
				if ti >= len(text) || tCh != foldByte('[', flags.CaseFold) {
					return noMatch
				}

				pi++
				ti++

				continue
			}

			if res != match {
				return res
			}

			pi, ti = newPi, newTi

		default:
			if ti >= len(text) || tCh != pCh {
				return noMatch
			}

			pi++
			ti++
		}
	}

	if ti < len(text) {
		return noMatch
	}

	return match
}

// matchBracketAt evaluates one `[...]` construct starting at pattern[pi]
// against text[ti]. ok is false when the bracket is unterminated.
func matchBracketAt(pattern, text []byte, pi, ti int, flags Flags) (res result, newPi, newTi int, ok bool) {
	if ti >= len(text) {
		return noMatch, 0, 0, true
	}

	end, bm, negated, parsed := parseBracket(pattern, pi, flags.CaseFold)
	if !parsed {
		return noMatch, 0, 0, false
	}

	tCh := foldByte(text[ti], flags.CaseFold)
	matched := bm.Test(tCh)

	if matched == negated {
		return noMatch, 0, 0, true
	}

	if flags.Pathname && text[ti] == '/' {
		return noMatch, 0, 0, true
	}

	return match, end, ti + 1, true
}

// matchStar handles one run of '*' starting at pattern[pi]=='*', returning
// either a final result (done=true) or an updated (pi, ti) to continue the
// caller's loop — this split lets dowild stay an explicit loop instead of
// growing another layer of recursion for the common "coalesce stars, then
// keep scanning" case, while still recursing for the actual try-every-
// -position search, exactly as wildmatch.go's '*' case does.
func matchStar(pattern, text []byte, pi, ti int, flags Flags) (res result, newPi, newTi int, done bool) {
	pi++ // consume the first '*'

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	if pi >= len(pattern) {
		if flags.Pathname {
			for i := ti; i < len(text); i++ {
				if text[i] == '/' {
					return abortToDoubleStar, 0, 0, true
				}
			}
		}

		return match, 0, 0, true
	}

	// Fast-forward: if the next pattern byte is a plain literal, only try
	// positions where that literal actually occurs.
	if next := pattern[pi]; !isSpecial(next, flags) {
		lit := foldByte(next, flags.CaseFold)

		var pos int

		switch {
		case flags.Pathname:
			// '*' can't cross '/', so the scan has to stop there too;
			// indexOfLiteralRun alone can't express that second stop
			// condition, so fall back to the byte-at-a-time scan.
			pos = ti
			for pos < len(text) {
				if text[pos] == '/' {
					break
				}

				if foldByte(text[pos], flags.CaseFold) == lit {
					break
				}

				pos++
			}

		case flags.CaseFold:
			pos = ti
			for pos < len(text) && foldByte(text[pos], flags.CaseFold) != lit {
				pos++
			}

		default:
			if idx := indexOfLiteralRun(text[ti:], lit); idx >= 0 {
				pos = ti + idx
			} else {
				pos = len(text)
			}
		}

		if pos >= len(text) || (flags.Pathname && text[pos] == '/') {
			return abortToDoubleStar, 0, 0, true
		}

		ti = pos
	}

	for ti < len(text) {
		result := dowild(pattern, text, pi, ti, flags)
		if result != noMatch {
			if !flags.Pathname || result != abortToDoubleStar {
				return result, 0, 0, true
			}
		} else if flags.Pathname && text[ti] == '/' {
			return abortToDoubleStar, 0, 0, true
		}

		ti++
	}

	return abortAll, 0, 0, true
}

func isSpecial(b byte, flags Flags) bool {
	switch b {
	case '*', '?', '[':
		return true
	case '\\':
		return flags.Escapes
	default:
		return false
	}
}

// indexOfLiteralRun uses internal/simdbytes's batched scan to fast-forward
// matchStar past text that can't contain the next pattern byte, in the
// common case where neither Pathname nor CaseFold forces a manual scan.
func indexOfLiteralRun(haystack []byte, b byte) int {
	return simdbytes.IndexOfByte(haystack, b)
}
