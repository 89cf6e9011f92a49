// Package result implements the pathc/pathv/offs bookkeeping a
// glob(3)-shaped API needs, including the
// GLOB_APPEND carry-forward and GLOB_DOOFFS leading-slot reservation rules.
// None of the Go glob libraries this module draws on expose a glob_t-style
// result struct (doublestar and pathrules both just return a []string), so
// the shape here is built straight from glob(3)'s documented struct fields,
// expressed as idiomatic Go rather than a C struct transliteration.
package result

import "sort"

// Table is the finalized, read-only result of one Glob call — the Go
// analogue of glob_t.
type Table struct {
	// Pathc is the number of matched paths (excluding the Offs reserved
	// leading slots).
	Pathc int
	// Pathv holds Offs leading empty strings (reserved for the caller, per
	// GLOB_DOOFFS) followed by the Pathc matched paths.
	Pathv []string
	// Offs is the number of reserved leading slots in Pathv.
	Offs int
}

// Matches returns just the matched paths, without the reserved leading
// Offs slots.
func (t *Table) Matches() []string {
	if t == nil {
		return nil
	}

	return t.Pathv[t.Offs:]
}

// Free clears the table's backing slice, matching globfree()'s role in the
// C API. It is not required for Go garbage collection but guards against a
// caller accidentally reusing a Table that a later GLOB_APPEND call is
// about to replace out from under them.
func (t *Table) Free() {
	if t == nil {
		return
	}

	t.Pathv = nil
	t.Pathc = 0
}

// Aggregator accumulates matches from one or more directory-traversal
// passes and finalizes them into a Table.
type Aggregator struct {
	matches []string
	offs    int
	noSort  bool
}

// NewAggregator starts a fresh aggregation. offs reserves that many empty
// leading slots in the finalized Table.Pathv (GLOB_DOOFFS); noSort skips
// the final lexicographic sort (GLOB_NOSORT).
func NewAggregator(offs int, noSort bool) *Aggregator {
	return &Aggregator{offs: offs, noSort: noSort}
}

// SeedFrom carries an existing Table's matches forward, implementing
// GLOB_APPEND: the prior call's matches are kept, in their prior order,
// ahead of whatever this aggregation adds. The existing table's Offs wins
// (a second call changing DOOFFS mid-sequence is not meaningful).
func (a *Aggregator) SeedFrom(existing *Table) {
	if existing == nil {
		return
	}

	a.matches = append(a.matches, existing.Matches()...)
	a.offs = existing.Offs
}

// Add appends one matched path.
func (a *Aggregator) Add(path string) {
	a.matches = append(a.matches, path)
}

// Len reports how many matches have been added so far.
func (a *Aggregator) Len() int {
	return len(a.matches)
}

// Finalize sorts (unless noSort) and builds the Offs-padded Table.
func (a *Aggregator) Finalize() *Table {
	if !a.noSort {
		sort.Strings(a.matches)
	}

	pathv := make([]string, a.offs+len(a.matches))
	copy(pathv[a.offs:], a.matches)

	return &Table{
		Pathc: len(a.matches),
		Pathv: pathv,
		Offs:  a.offs,
	}
}
