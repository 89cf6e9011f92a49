package fnmatch

// extglob.go implements the ksh/bash `?() *() +() @() !()` extended glob
// constructs, layered on top of the non-extglob kernel (dowild): each
// alternative inside a construct is tested by recursing into that same
// kernel. A `+()`/`*()` repeating construct memoizes on (pattern position,
// text position) to avoid exponential re-exploration of the same
// alternative boundary, with the memo table capped at 1024 text positions.

const (
	maxExtglobAlternatives = 32
	maxMemoPositions       = 1024
)

// HasExtglobConstruct is the exported form of hasExtglobConstruct, used by
// the pattern package to recognize when a segment cannot be classified into
// a literal/star/bracket template and must always go through the general
// kernel.
func HasExtglobConstruct(pattern []byte) bool {
	return hasExtglobConstruct(pattern)
}

// hasExtglobConstruct reports whether pattern contains a recognized extglob
// operator immediately followed by '(' — a cheap pre-filter so patterns with
// no extglob at all skip the heavier matcher entirely.
func hasExtglobConstruct(pattern []byte) bool {
	for i := 0; i+1 < len(pattern); i++ {
		switch pattern[i] {
		case '?', '*', '+', '@', '!':
			if pattern[i+1] == '(' {
				return true
			}
		}
	}

	return false
}

// matchExtglobTop anchors an extglob-aware match of the full pattern against
// the full text.
func matchExtglobTop(pattern, text []byte, flags Flags) bool {
	memo := make(map[uint64]int8)

	return extDowild(pattern, text, 0, 0, flags, memo) == match
}

// memoKey packs (pattern position, text position) into one map key. Text
// positions beyond maxMemoPositions simply are not memoized (still correct,
// just not accelerated).
func memoKey(pi, ti int) (uint64, bool) {
	if ti >= maxMemoPositions {
		return 0, false
	}

	return uint64(pi)<<32 | uint64(ti), true
}

// extDowild is dowild extended with extglob-group recognition. Plain bytes
// fall through to the same literal/`*`/`?`/`[...]` handling as dowild; the
// only addition is detecting `OP(` at the current position.
func extDowild(pattern, text []byte, pi, ti int, flags Flags, memo map[uint64]int8) result {
	for pi < len(pattern) {
		if op, groupEnd, ok := extglobGroupAt(pattern, pi); ok {
			return matchExtglobGroup(op, pattern, pi, groupEnd, text, ti, flags, memo)
		}

		pCh := pattern[pi]

		if ti >= len(text) && pCh != '*' {
			return abortAll
		}

		var tCh byte
		if ti < len(text) {
			tCh = foldByte(text[ti], flags.CaseFold)
		}

		folded := foldByte(pCh, flags.CaseFold)

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
			if ti >= len(text) || (flags.Pathname && text[ti] == '/') {
				return noMatch
			}

			pi++
			ti++

		case pCh == '*':
			return extMatchStar(pattern, text, pi, ti, flags, memo)

		case pCh == '[':
			end, bm, negated, parsed := parseBracket(pattern, pi, flags.CaseFold)
			if !parsed {
				if ti >= len(text) || tCh != foldByte('[', flags.CaseFold) {
					return noMatch
				}

				pi++
				ti++

				continue
			}

			matched := bm.Test(tCh)
			if matched == negated || (flags.Pathname && text[ti] == '/') {
				return noMatch
			}

			pi, ti = end, ti+1

		default:
			if ti >= len(text) || tCh != folded {
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

// extMatchStar is extDowild's '*' handling: same coalesce-and-try-every-
// position loop as matchStar, recursing into extDowild so an extglob group
// later in the pattern is still honored.
func extMatchStar(pattern, text []byte, pi, ti int, flags Flags, memo map[uint64]int8) result {
	pi++
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	if pi >= len(pattern) {
		if flags.Pathname {
			for i := ti; i < len(text); i++ {
				if text[i] == '/' {
					return abortToDoubleStar
				}
			}
		}

		return match
	}

	for ; ti <= len(text); ti++ {
		if flags.Pathname && ti < len(text) && text[ti] == '/' {
			break
		}

		if r := extDowild(pattern, text, pi, ti, flags, memo); r == match {
			return match
		}
	}

	return noMatch
}

// extglobGroupAt reports whether pattern[pi] begins an extglob group
// (`OP(`...`)`), returning the operator byte and the index of the matching
// close paren. Nesting is tracked by paren depth.
func extglobGroupAt(pattern []byte, pi int) (op byte, closeIdx int, ok bool) {
	if pi+1 >= len(pattern) || pattern[pi+1] != '(' {
		return 0, 0, false
	}

	switch pattern[pi] {
	case '?', '*', '+', '@', '!':
		op = pattern[pi]
	default:
		return 0, 0, false
	}

	depth := 0

	for i := pi + 1; i < len(pattern); i++ {
		switch pattern[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return op, i, true
			}
		}
	}

	return 0, 0, false
}

// splitAlternatives splits the body of an extglob group (between the parens)
// on top-level-depth '|', capped at maxExtglobAlternatives.
func splitAlternatives(body []byte) [][]byte {
	var alts [][]byte

	depth := 0
	start := 0

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}

		if len(alts) >= maxExtglobAlternatives-1 {
			break
		}
	}

	alts = append(alts, body[start:])

	return alts
}

// matchExtglobGroup matches one extglob group (pattern[groupStart] is the
// operator byte, pattern[groupEnd] is the matching ')') against text
// starting at ti, then continues matching the remainder of pattern after
// the group against the remainder of text.
func matchExtglobGroup(
	op byte,
	pattern []byte,
	groupStart, groupEnd int,
	text []byte,
	ti int,
	flags Flags,
	memo map[uint64]int8,
) result {
	body := pattern[groupStart+2 : groupEnd]
	rest := pattern[groupEnd+1:]
	alts := splitAlternatives(body)

	key, memoable := memoKey(groupStart, ti)
	if memoable {
		if v, found := memo[key]; found {
			if v == 1 {
				return match
			}

			return noMatch
		}
	}

	var res result

	switch op {
	case '?':
		res = matchOptional(alts, rest, text, ti, flags, memo)
	case '@':
		res = matchExactlyOne(alts, rest, text, ti, flags, memo)
	case '*':
		res = matchZeroOrMore(alts, rest, text, ti, flags, memo)
	case '+':
		res = matchOneOrMore(alts, rest, text, ti, flags, memo)
	case '!':
		res = matchNegated(alts, rest, text, ti, flags, memo)
	default:
		res = noMatch
	}

	if memoable {
		if res == match {
			memo[key] = 1
		} else {
			memo[key] = 0
		}
	}

	return res
}

// altFullyMatches reports whether alt (which may itself contain one more
// level of extglob) fully matches text[ti:k].
func altFullyMatches(alt []byte, text []byte, ti, k int, flags Flags, memo map[uint64]int8) bool {
	return extDowild(alt, text[:k], 0, ti, flags, memo) == match
}

func continueRest(rest []byte, text []byte, k int, flags Flags, memo map[uint64]int8) result {
	if len(rest) == 0 {
		if k == len(text) {
			return match
		}

		return noMatch
	}

	return extDowild(rest, text, 0, k, flags, memo)
}

func matchOptional(alts [][]byte, rest, text []byte, ti int, flags Flags, memo map[uint64]int8) result {
	if continueRest(rest, text, ti, flags, memo) == match {
		return match
	}

	for _, alt := range alts {
		for k := ti; k <= len(text); k++ {
			if altFullyMatches(alt, text, ti, k, flags, memo) && continueRest(rest, text, k, flags, memo) == match {
				return match
			}
		}
	}

	return noMatch
}

func matchExactlyOne(alts [][]byte, rest, text []byte, ti int, flags Flags, memo map[uint64]int8) result {
	for _, alt := range alts {
		for k := ti; k <= len(text); k++ {
			if altFullyMatches(alt, text, ti, k, flags, memo) && continueRest(rest, text, k, flags, memo) == match {
				return match
			}
		}
	}

	return noMatch
}

func matchZeroOrMore(alts [][]byte, rest, text []byte, ti int, flags Flags, memo map[uint64]int8) result {
	return matchRepeats(alts, rest, text, ti, flags, memo, true)
}

func matchOneOrMore(alts [][]byte, rest, text []byte, ti int, flags Flags, memo map[uint64]int8) result {
	return matchRepeats(alts, rest, text, ti, flags, memo, false)
}

// matchRepeats drives `*()`/`+()`: allowZero controls whether zero
// repetitions is an immediate success path.
func matchRepeats(alts [][]byte, rest, text []byte, ti int, flags Flags, memo map[uint64]int8, allowZero bool) result {
	if allowZero && continueRest(rest, text, ti, flags, memo) == match {
		return match
	}

	for _, alt := range alts {
		for k := ti; k <= len(text); k++ {
			if k == ti && len(alt) > 0 {
				// A zero-width alternative match would loop forever; skip it
				// as a repetition step (it is still reachable via allowZero).
				if altFullyMatches(alt, text, ti, k, flags, memo) {
					continue
				}
			}

			if !altFullyMatches(alt, text, ti, k, flags, memo) {
				continue
			}

			if continueRest(rest, text, k, flags, memo) == match {
				return match
			}

			if k > ti && matchRepeats(alts, rest, text, k, flags, memo, true) == match {
				return match
			}
		}
	}

	return noMatch
}

// matchNegated implements `!(A|B|…)`: matches any text that, for every
// prefix length the remainder of the pattern could plausibly want, is not a
// full match of any alternative.
func matchNegated(alts [][]byte, rest, text []byte, ti int, flags Flags, memo map[uint64]int8) result {
	for k := ti; k <= len(text); k++ {
		excluded := false

		for _, alt := range alts {
			if altFullyMatches(alt, text, ti, k, flags, memo) {
				excluded = true

				break
			}
		}

		if excluded {
			continue
		}

		if continueRest(rest, text, k, flags, memo) == match {
			return match
		}
	}

	return noMatch
}
