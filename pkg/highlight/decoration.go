package highlight

import "slices"

// DecorationSet is an immutable, sorted collection of ranges.
type DecorationSet struct {
	ranges []Range
}

// NewDecorationSet copies and sorts ranges.
func NewDecorationSet(ranges []Range) DecorationSet {
	sorted := slices.Clone(ranges)
	SortRanges(sorted)
	return DecorationSet{ranges: sorted}
}

// Len returns the number of ranges.
func (s DecorationSet) Len() int {
	return len(s.ranges)
}

// Ranges returns a copy of the ranges in order.
func (s DecorationSet) Ranges() []Range {
	return slices.Clone(s.ranges)
}

// Classes returns the class list of every range in order.
func (s DecorationSet) Classes() []string {
	out := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = r.Classes
	}
	return out
}

// Find returns the ranges that touch [from, to].
func (s DecorationSet) Find(from, to int) []Range {
	var out []Range
	for _, r := range s.ranges {
		if r.From > to {
			break
		}
		if r.To >= from {
			out = append(out, r)
		}
	}
	return out
}

// Map returns the set with every range mapped through m. Ranges that were
// deleted or collapsed are dropped.
func (s DecorationSet) Map(m Mapper) DecorationSet {
	mapped := mapRanges(s.ranges, m)
	SortRanges(mapped)
	return DecorationSet{ranges: mapped}
}
