package mdast

import "bytes"

// Equal reports whether n and other have the same kind, attributes, text and
// children. Source metadata (CodeBlockAttrs.InfoOffset) is ignored.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil || n.Kind != other.Kind {
		return false
	}
	if !blockAttrsEqual(n.Block, other.Block) || !inlineAttrsEqual(n.Inline, other.Inline) {
		return false
	}

	a, b := n.FirstChild, other.FirstChild
	for ; a != nil && b != nil; a, b = a.Next, b.Next {
		if !a.Equal(b) {
			return false
		}
	}
	return a == nil && b == nil
}

func blockAttrsEqual(a, b *BlockAttrs) bool {
	if a == nil || b == nil {
		return a.isZero() && b.isZero()
	}
	if a.HeadingLevel != b.HeadingLevel {
		return false
	}
	if (a.List == nil) != (b.List == nil) || (a.List != nil && *a.List != *b.List) {
		return false
	}
	ca, cb := a.CodeBlock, b.CodeBlock
	if ca == nil || cb == nil {
		return ca == cb
	}
	return ca.Info == cb.Info && ca.Language == cb.Language && ca.Indented == cb.Indented
}

func (a *BlockAttrs) isZero() bool {
	return a == nil || (a.HeadingLevel == 0 && a.List == nil && a.CodeBlock == nil)
}

func inlineAttrsEqual(a, b *InlineAttrs) bool {
	if a == nil || b == nil {
		return a.isZero() && b.isZero()
	}
	if a.EmphasisLevel != b.EmphasisLevel || !bytes.Equal(a.Text, b.Text) {
		return false
	}
	if (a.Link == nil) != (b.Link == nil) {
		return false
	}
	return a.Link == nil || *a.Link == *b.Link
}

func (a *InlineAttrs) isZero() bool {
	return a == nil || (len(a.Text) == 0 && a.Link == nil && a.EmphasisLevel == 0)
}
