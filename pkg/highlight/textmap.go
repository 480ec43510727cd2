package highlight

import (
	"sort"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// TextMap relates offsets in a node's joined text content to document
// positions. Offsets are contiguous; positions skip the node boundaries
// between text runs.
type TextMap struct {
	base int
	size int
	runs []textRun
}

type textRun struct {
	offset, pos, size int
}

// NewTextMap maps the text under n, whose content starts at position base.
func NewTextMap(n *mdast.Node, base int) *TextMap {
	m := &TextMap{base: base}
	n.Descendants(func(c *mdast.Node, pos int) bool {
		if c.IsText() {
			if size := c.Size(); size > 0 {
				m.runs = append(m.runs, textRun{offset: m.size, pos: base + pos, size: size})
				m.size += size
			}
		}
		return true
	})
	return m
}

// Len returns the length of the joined text.
func (m *TextMap) Len() int {
	return m.size
}

// Pos returns the document position of a text offset. An offset between two
// runs resolves to the start of the later run, or to the end of the earlier
// one when end is set.
func (m *TextMap) Pos(offset int, end bool) int {
	i := sort.Search(len(m.runs), func(i int) bool {
		r := m.runs[i]
		if end {
			return r.offset+r.size >= offset
		}
		return r.offset+r.size > offset
	})
	if i == len(m.runs) {
		if i == 0 {
			return m.base
		}
		last := m.runs[i-1]
		return last.pos + last.size
	}
	r := m.runs[i]
	return r.pos + max(offset-r.offset, 0)
}

// Offset returns the text offset of a document position. Positions on node
// boundaries resolve to the offset of the next text.
func (m *TextMap) Offset(pos int) int {
	i := sort.Search(len(m.runs), func(i int) bool {
		r := m.runs[i]
		return r.pos+r.size >= pos
	})
	if i == len(m.runs) {
		return m.size
	}
	r := m.runs[i]
	if pos <= r.pos {
		return r.offset
	}
	return r.offset + pos - r.pos
}

// Positions converts ranges over text offsets into document positions.
func (m *TextMap) Positions(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		r.From, r.To = m.Pos(r.From, false), m.Pos(r.To, true)
		r.To = max(r.To, r.From)
		out[i] = r
	}
	return out
}

// Offsets converts ranges over document positions into text offsets.
func (m *TextMap) Offsets(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		r.From, r.To = m.Offset(r.From), m.Offset(r.To)
		out[i] = r
	}
	return out
}
