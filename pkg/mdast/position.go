package mdast

import "strings"

// Size returns the number of positions n occupies in its parent's content.
func (n *Node) Size() int {
	switch {
	case n.IsText():
		if n.Inline == nil {
			return 0
		}
		return len(n.Inline.Text)
	case n.IsLeaf():
		return 1
	default:
		return n.ContentSize() + 2
	}
}

// ContentSize returns the combined size of n's children.
func (n *Node) ContentSize() int {
	size := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		size += child.Size()
	}
	return size
}

// TextContent concatenates the text of all text leaves under n.
func (n *Node) TextContent() string {
	if n.IsText() {
		if n.Inline == nil {
			return ""
		}
		return string(n.Inline.Text)
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// NodeAt returns the node that starts at pos, or the text node containing
// pos. Positions are relative to the start of n's content. Returns nil when
// nothing starts there.
func (n *Node) NodeAt(pos int) *Node {
	node := n
	for {
		child, offset := node.childAt(pos)
		if child == nil {
			return nil
		}
		if offset == pos || child.IsText() {
			return child
		}
		pos -= offset + 1
		node = child
	}
}

// childAt returns the child covering pos and its start offset. A position on
// a boundary belongs to the child that starts there.
func (n *Node) childAt(pos int) (*Node, int) {
	if pos < 0 {
		return nil, 0
	}
	offset := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		end := offset + child.Size()
		if end > pos {
			return child, offset
		}
		offset = end
	}
	return nil, 0
}

// TextblockAt finds the innermost textblock whose content contains both from
// and to. It returns the block and the absolute position of its content start.
func (n *Node) TextblockAt(from, to int) (*Node, int, bool) {
	if from > to {
		return nil, 0, false
	}
	node, base := n, 0
	for {
		if node != n && node.IsTextblock() {
			return node, base, true
		}
		var inner *Node
		pos := base
		for child := node.FirstChild; child != nil; child = child.Next {
			end := pos + child.Size()
			if !child.IsText() && !child.IsLeaf() && pos < from && to < end {
				inner = child
				break
			}
			pos = end
		}
		if inner == nil {
			return nil, 0, false
		}
		node, base = inner, pos+1
	}
}

// ChildRange finds the node whose children are delimited by from and to:
// both positions must fall on child boundaries of the same parent. It returns
// the parent and the index range [start, end) of the covered children.
func (n *Node) ChildRange(from, to int) (*Node, int, int, bool) {
	if from > to {
		return nil, 0, 0, false
	}
	node := n
	for {
		if from < 0 || to > node.ContentSize() {
			return nil, 0, 0, false
		}
		start, end := -1, -1
		var inner *Node
		innerStart, pos, idx := 0, 0, 0
		for child := node.FirstChild; ; child = child.Next {
			if pos == from && start < 0 {
				start = idx
			}
			if pos == to && end < 0 {
				end = idx
			}
			if child == nil {
				break
			}
			next := pos + child.Size()
			if pos < from && to < next {
				inner, innerStart = child, pos
			}
			pos = next
			idx++
		}
		if start >= 0 && end >= 0 {
			return node, start, end, true
		}
		if inner == nil || inner.IsText() || inner.IsLeaf() {
			return nil, 0, 0, false
		}
		node = inner
		from -= innerStart + 1
		to -= innerStart + 1
	}
}
