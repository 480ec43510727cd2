package mdast

// NewNode creates a new node of the specified kind with no parent or children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a document root holding children in order.
func NewDocument(children ...*Node) *Node {
	doc := NewNode(NodeDocument)
	for _, child := range children {
		AppendChild(doc, child)
	}
	return doc
}

// NewText creates a text leaf. Empty text is allowed but has size zero.
func NewText(text string) *Node {
	node := NewNode(NodeText)
	node.Inline = NewInlineAttrs().WithText([]byte(text))
	return node
}

// NewCodeBlock creates a fenced code block with the given info string.
// An empty code string produces a block without children.
func NewCodeBlock(info, code string) *Node {
	node := NewNode(NodeCodeBlock)
	node.Block = NewBlockAttrs().WithCodeBlock(&CodeBlockAttrs{
		Info:       info,
		InfoOffset: -1,
	})
	if code != "" {
		AppendChild(node, NewText(code))
	}
	return node
}

// NewParagraph creates a paragraph holding a single text run.
func NewParagraph(text string) *Node {
	node := NewNode(NodeParagraph)
	if text != "" {
		AppendChild(node, NewText(text))
	}
	return node
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	parent := sibling.Parent

	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceChild replaces oldChild with newChild in the tree.
func ReplaceChild(parent, oldChild, newChild *Node) {
	if parent == nil || oldChild == nil || newChild == nil || oldChild.Parent != parent {
		return
	}
	InsertBefore(oldChild, newChild)
	RemoveChild(parent, oldChild)
}

// SetText replaces the children of a textblock with a single text run.
// An empty string leaves the block without children.
func SetText(block *Node, text string) {
	if block == nil {
		return
	}
	for child := block.FirstChild; child != nil; child = block.FirstChild {
		RemoveChild(block, child)
	}
	if text != "" {
		AppendChild(block, NewText(text))
	}
}

// Clone returns a deep copy of n without a parent.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:   n.Kind,
		Block:  n.Block.clone(),
		Inline: n.Inline.clone(),
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		AppendChild(out, child.Clone())
	}
	return out
}
