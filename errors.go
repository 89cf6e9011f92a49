package zlob

import "github.com/dmtrKovalenko/zlob/option"

// Sentinel errors mirror glob(3)'s result codes: ABORTED on
// I/O abort, NOSPACE on allocation failure (never produced by a Go
// allocator under normal operation, but kept for ABI parity with callers
// porting glob(3) code), and NOMATCH when a call produced no results
// without NOCHECK/NOMAGIC in effect.
var (
	ErrAborted = option.ErrAborted
	ErrNoSpace = option.ErrNoSpace
	ErrNoMatch = option.ErrNoMatch
)
