package highlight

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/gomdhl/pkg/transform"
)

// Range is one decoration: the half-open interval [From, To) in document
// coordinates and the classes of the scope covering it.
type Range struct {
	From    int
	To      int
	Scope   string
	Classes string
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d] %s", r.From, r.To, r.Classes)
}

// SortRanges orders ranges by start, and by end descending for ranges that
// start together, so an enclosing range comes before the ranges it holds.
func SortRanges(ranges []Range) {
	slices.SortStableFunc(ranges, compareRanges)
}

func compareRanges(a, b Range) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(b.To, a.To)
}

// Mapper maps positions through a document change.
type Mapper interface {
	MapResult(pos, assoc int) transform.MapResult
}

// mapRange moves r through m. The start sticks to content after it and the
// end to content before it; a range whose ends were both deleted, or that
// collapsed, is dropped.
func mapRange(r Range, m Mapper) (Range, bool) {
	from := m.MapResult(r.From, 1)
	to := m.MapResult(r.To, -1)
	if (from.Deleted && to.Deleted) || from.Pos >= to.Pos {
		return Range{}, false
	}
	r.From, r.To = from.Pos, to.Pos
	return r, true
}

func mapRanges(ranges []Range, m Mapper) []Range {
	out := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if mapped, ok := mapRange(r, m); ok {
			out = append(out, mapped)
		}
	}
	return out
}
