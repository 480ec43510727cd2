// Package mdast provides the Markdown document tree used by gomdhl.
//
// The tree keeps the classic linked representation (parent, first/last child,
// siblings) and adds a position space in which every node has a size:
//   - a text node is as large as its text in bytes,
//   - a leaf block (thematic break, HTML block, line breaks) has size 1,
//   - every other node occupies its content plus one opening and one closing
//     boundary.
//
// Document content starts at position 0, so a block at position p has its
// content starting at p+1.
package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	NodeDocument:      "document",
	NodeParagraph:     "paragraph",
	NodeHeading:       "heading",
	NodeList:          "list",
	NodeListItem:      "list_item",
	NodeBlockquote:    "blockquote",
	NodeCodeBlock:     "code_block",
	NodeThematicBreak: "thematic_break",
	NodeHTMLBlock:     "html_block",
	NodeText:          "text",
	NodeEmphasis:      "emphasis",
	NodeStrong:        "strong",
	NodeCodeSpan:      "code_span",
	NodeLink:          "link",
	NodeImage:         "image",
	NodeSoftBreak:     "soft_break",
	NodeHardBreak:     "hard_break",
	NodeHTMLInline:    "html_inline",
	NodeRaw:           "raw",
}

// String returns the snake_case type name of the kind, e.g. "code_block".
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseNodeKind returns the kind whose String() is name.
func ParseNodeKind(name string) (NodeKind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return NodeKind(kind), true
		}
	}
	return 0, false
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink,
		NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n.Kind == NodeText
}

// IsLeaf reports whether n is an atomic node that cannot hold content.
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case NodeThematicBreak, NodeHTMLBlock, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// IsTextblock reports whether n is a block whose children are all text.
// Empty paragraphs, headings and code blocks count as textblocks.
func (n *Node) IsTextblock() bool {
	switch n.Kind {
	case NodeParagraph, NodeHeading, NodeCodeBlock:
	default:
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !child.IsText() {
			return false
		}
	}
	return true
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Child returns the child at index, or nil when out of range.
func (n *Node) Child(index int) *Node {
	if index < 0 {
		return nil
	}
	child := n.FirstChild
	for ; child != nil && index > 0; index-- {
		child = child.Next
	}
	return child
}
