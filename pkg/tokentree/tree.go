// Package tokentree holds the scoped token trees produced by a highlighter
// and the event stream used to walk them.
package tokentree

import (
	"iter"
	"strings"
)

// NodeKind distinguishes text leaves from scope nodes.
type NodeKind uint8

const (
	// NodeScope is a node that groups children under a scope name.
	NodeScope NodeKind = iota

	// NodeText is a leaf holding source text.
	NodeText
)

// Node is one node of a token tree.
type Node struct {
	Kind NodeKind

	// Scope is the lexical category, e.g. "keyword" or "title.function".
	// Empty for text leaves and for the root.
	Scope string

	// Sublanguage marks a scope that embeds another language. Scope then
	// holds the language name.
	Sublanguage bool

	// Text is the source text of a text leaf.
	Text string

	Children []*Node
}

// Text creates a text leaf.
func Text(s string) *Node {
	return &Node{Kind: NodeText, Text: s}
}

// Scope creates a scope node.
func Scope(name string, children ...*Node) *Node {
	return &Node{Kind: NodeScope, Scope: name, Children: children}
}

// Sublanguage creates a scope node that embeds the named language.
func Sublanguage(language string, children ...*Node) *Node {
	return &Node{Kind: NodeScope, Scope: language, Sublanguage: true, Children: children}
}

// Tree is a token tree. The root carries no scope.
type Tree struct {
	Root *Node
}

// New creates a tree whose root holds children.
func New(children ...*Node) *Tree {
	return &Tree{Root: Scope("", children...)}
}

// Plain creates a tree holding text without any scope.
func Plain(text string) *Tree {
	if text == "" {
		return New()
	}
	return New(Text(text))
}

// TextContent concatenates every text leaf of the tree.
func (t *Tree) TextContent() string {
	var sb strings.Builder
	for ev := range t.Events() {
		if ev.Kind == EventText {
			sb.WriteString(ev.Text)
		}
	}
	return sb.String()
}

// Events yields the depth-first event stream of the tree, starting with the
// root's Open and ending with its Close. Scope nodes without children
// produce no events.
func (t *Tree) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if t == nil || t.Root == nil {
			return
		}
		walk(t.Root, yield)
	}
}

func walk(n *Node, yield func(Event) bool) bool {
	if n.Kind == NodeText {
		return yield(Event{Kind: EventText, Text: n.Text})
	}
	if len(n.Children) == 0 {
		return true
	}
	if !yield(Event{Kind: EventOpen, Scope: n.Scope, Sublanguage: n.Sublanguage}) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, yield) {
			return false
		}
	}
	return yield(Event{Kind: EventClose, Scope: n.Scope, Sublanguage: n.Sublanguage})
}
