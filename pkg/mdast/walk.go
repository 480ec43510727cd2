package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the AST starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// DescendFunc is called by Descendants with a node and its absolute position.
// Returning false skips the node's children.
type DescendFunc func(n *Node, pos int) bool

// Descendants calls fn for every descendant of n (not n itself) in document
// order. Positions are relative to the start of n's content.
func (n *Node) Descendants(fn DescendFunc) {
	if n == nil {
		return
	}
	n.descend(0, fn)
}

func (n *Node) descend(start int, fn DescendFunc) {
	pos := start
	for child := n.FirstChild; child != nil; child = child.Next {
		if fn(child, pos) && !child.IsText() && !child.IsLeaf() {
			child.descend(pos+1, fn)
		}
		pos += child.Size()
	}
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}
