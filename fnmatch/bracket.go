package fnmatch

// Bitmap256 is a 256-bit set used for bracket-expression membership tests.
// It replaces per-byte rescans (ported from idelchi-go-gitignore/wildmatch/
// wildmatch.go's inline '[' handling) with a single build pass followed by
// O(1) branchless lookups.
type Bitmap256 [4]uint64

// Set marks b as a member of the set.
func (bm *Bitmap256) Set(b byte) {
	bm[b>>6] |= 1 << (b & 63)
}

// Test reports whether b is a member of the set. Branchless: a single shift,
// mask and compare, no conditional jump on the bit value itself.
func (bm Bitmap256) Test(b byte) bool {
	return bm[b>>6]&(1<<(b&63)) != 0
}

// posixClasses maps POSIX bracket-expression class names to predicates,
// ported 1:1 from wildmatch.go's switch over alpha/digit/... so behavior
// (including which characters count as "space" and "upper" under
// case-folding) stays byte-for-byte faithful to Git's wildmatch.
var posixClasses = map[string]func(byte) bool{
	"alnum":  isAlnum,
	"alpha":  isAlpha,
	"blank":  isBlank,
	"cntrl":  isCntrl,
	"digit":  isDigit,
	"graph":  isGraph,
	"lower":  isLower,
	"print":  isPrint,
	"punct":  isPunct,
	"space":  isSpace,
	"upper":  isUpper,
	"xdigit": isXDigit,
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isAlpha(b byte) bool { return isUpper(b) || isLower(b) }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }
func isBlank(b byte) bool { return b == ' ' || b == '\t' }
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
func isPrint(b byte) bool { return b >= 0x20 && b <= 0x7e }
func isGraph(b byte) bool { return isPrint(b) && !isBlank(b) }
func isCntrl(b byte) bool { return b <= 0x1f || b == 0x7f }
func isPunct(b byte) bool { return isPrint(b) && !isAlnum(b) && b != ' ' }
func isXDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// foldByte applies ASCII-only case folding when caseFold is set.
func foldByte(b byte, caseFold bool) byte {
	if caseFold && isUpper(b) {
		return b + ('a' - 'A')
	}

	return b
}

// ParseBracket is the exported form of parseBracket, used by the pattern
// package's tokenizer to share bracket-parsing logic instead of
// reimplementing it.
func ParseBracket(pattern []byte, start int, caseFold bool) (end int, bm Bitmap256, negated bool, ok bool) {
	return parseBracket(pattern, start, caseFold)
}

// parseBracket parses a `[...]` bracket expression starting at pattern[start]
// (which must be '['). It returns the index just past the closing ']', the
// built bitmap, whether the class is negated, and whether parsing succeeded
// (false on an unterminated bracket, which callers treat as a literal '[').
func parseBracket(pattern []byte, start int, caseFold bool) (end int, bm Bitmap256, negated bool, ok bool) {
	i := start + 1
	if i >= len(pattern) {
		return 0, bm, false, false
	}

	if pattern[i] == '!' || pattern[i] == '^' {
		negated = true
		i++
	}

	first := true

	var prev byte
	havePrev := false

	for i < len(pattern) {
		if pattern[i] == ']' && !first {
			end = i + 1

			return end, bm, negated, true
		}

		first = false

		switch {
		case pattern[i] == '[' && i+1 < len(pattern) && pattern[i+1] == ':':
			classEnd := i + 2
			for classEnd < len(pattern) && pattern[classEnd] != ']' {
				classEnd++
			}

			if classEnd >= len(pattern) || classEnd-1 <= i+1 || pattern[classEnd-1] != ':' {
				// Not a well-formed "[:name:]" — treat '[' as a literal member.
				bm.Set(foldByte('[', caseFold))
				prev = '['
				havePrev = true
				i++

				continue
			}

			name := string(pattern[i+2 : classEnd-1])

			pred, known := posixClasses[name]
			if !known {
				return 0, bm, false, false
			}

			for b := 0; b < 256; b++ {
				if pred(byte(b)) {
					bm.Set(foldByte(byte(b), caseFold))
				}
			}

			i = classEnd + 1
			havePrev = false

		case pattern[i] == '\\' && i+1 < len(pattern):
			c := pattern[i+1]
			bm.Set(foldByte(c, caseFold))
			prev = c
			havePrev = true
			i += 2

		case pattern[i] == '-' && havePrev && i+1 < len(pattern) && pattern[i+1] != ']':
			i++

			end := pattern[i]
			if end == '\\' && i+1 < len(pattern) {
				i++
				end = pattern[i]
			}

			lo, hi := prev, end
			if lo > hi {
				lo, hi = hi, lo
			}

			for b := int(lo); b <= int(hi); b++ {
				bm.Set(foldByte(byte(b), caseFold))

				if caseFold && isUpper(byte(b)) {
					bm.Set(byte(b) + ('a' - 'A'))
				}
			}

			havePrev = false
			i++

		default:
			bm.Set(foldByte(pattern[i], caseFold))
			prev = pattern[i]
			havePrev = true
			i++
		}
	}

	return 0, bm, false, false
}
