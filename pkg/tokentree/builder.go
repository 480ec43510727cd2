package tokentree

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned by Finish when scopes were closed that were never
// opened or left open.
var ErrUnbalanced = errors.New("unbalanced token tree")

// Builder assembles a Tree from open, text and close calls. Adjacent text is
// merged into one leaf.
type Builder struct {
	root  *Node
	stack []*Node
	err   error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	root := Scope("")
	return &Builder{root: root, stack: []*Node{root}}
}

func (b *Builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

// Open starts a scope.
func (b *Builder) Open(scope string) *Builder {
	return b.push(Scope(scope))
}

// OpenSublanguage starts an embedded-language scope.
func (b *Builder) OpenSublanguage(language string) *Builder {
	return b.push(Sublanguage(language))
}

func (b *Builder) push(n *Node) *Builder {
	parent := b.top()
	parent.Children = append(parent.Children, n)
	b.stack = append(b.stack, n)
	return b
}

// AddText appends text to the current scope.
func (b *Builder) AddText(text string) *Builder {
	if text == "" {
		return b
	}
	parent := b.top()
	if n := len(parent.Children); n > 0 && parent.Children[n-1].Kind == NodeText {
		parent.Children[n-1].Text += text
		return b
	}
	parent.Children = append(parent.Children, Text(text))
	return b
}

// Close ends the current scope.
func (b *Builder) Close() *Builder {
	if len(b.stack) == 1 {
		if b.err == nil {
			b.err = fmt.Errorf("%w: close without open", ErrUnbalanced)
		}
		return b
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Depth returns the number of open scopes.
func (b *Builder) Depth() int {
	return len(b.stack) - 1
}

// Finish returns the built tree.
func (b *Builder) Finish() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if open := b.Depth(); open > 0 {
		return nil, fmt.Errorf("%w: %d scope(s) left open", ErrUnbalanced, open)
	}
	return &Tree{Root: b.root}, nil
}
