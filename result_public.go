package zlob

import "github.com/dmtrKovalenko/zlob/result"

// resultOwned is bit 0 of Result.Flags (glob(3)'s "flags: bit field; bit 0
// indicates owned strings"). Every Result this package produces owns its
// strings, so the bit is always set; it is kept as a named constant for
// parity with ports of glob(3)-based code that inspect it.
const resultOwned = 1

// Result is the public, ABI-shaped result table glob(3) describes: a
// length-carrying path array plus the leading-null offset count and an
// owned-strings flag. It wraps result.Table, the package that actually
// builds it.
type Result struct {
	Pathc int
	Pathv []string
	Offs  int
	Flags int

	// MagChar reports whether any wildcard byte was encountered while
	// compiling the pattern(s) that produced this result — glob(3)'s
	// GLOB_MAGCHAR output flag.
	MagChar bool

	table *result.Table
}

// Matches returns the matched paths, excluding the Offs leading empty
// slots.
func (r *Result) Matches() []string {
	if r == nil || r.table == nil {
		return nil
	}

	return r.table.Matches()
}

// Free releases the underlying path slice. Go's garbage collector makes
// this a no-op in practice; it is kept for API parity with glob(3)'s
// globfree and so callers used to that lifecycle have somewhere to call
// it.
func (r *Result) Free() {
	if r == nil || r.table == nil {
		return
	}

	r.table.Free()
	r.Pathv = nil
}

func newResult(t *result.Table, magChar bool) *Result {
	return &Result{
		Pathc:   t.Pathc,
		Pathv:   t.Pathv,
		Offs:    t.Offs,
		Flags:   resultOwned,
		MagChar: magChar,
		table:   t,
	}
}
