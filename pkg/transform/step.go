package transform

import (
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// Step is one atomic document change. Apply never modifies its input.
type Step interface {
	// Apply returns a new document with the step applied to doc.
	Apply(doc *mdast.Node) (*mdast.Node, error)

	// Map describes how the step moves positions.
	Map() StepMap

	// Invert returns the step that undoes this one. before is the document
	// the step was applied to.
	Invert(before *mdast.Node) (Step, error)
}

// StepError reports a step that cannot be applied to a document.
type StepError struct {
	Step    Step
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

// ReplaceText replaces the text between From and To with Text. Both
// positions must be inside the same textblock.
type ReplaceText struct {
	From int
	To   int
	Text string
}

func (s ReplaceText) String() string {
	return fmt.Sprintf("replace text [%d:%d]", s.From, s.To)
}

// Apply implements Step.
func (s ReplaceText) Apply(doc *mdast.Node) (*mdast.Node, error) {
	out := doc.Clone()
	block, start, ok := out.TextblockAt(s.From, s.To)
	if !ok {
		return nil, &StepError{Step: s, Message: "range is not inside a single textblock"}
	}
	text := block.TextContent()
	mdast.SetText(block, text[:s.From-start]+s.Text+text[s.To-start:])
	return out, nil
}

// Map implements Step.
func (s ReplaceText) Map() StepMap {
	return NewStepMap(Span{Start: s.From, OldSize: s.To - s.From, NewSize: len(s.Text)})
}

// Invert implements Step.
func (s ReplaceText) Invert(before *mdast.Node) (Step, error) {
	block, start, ok := before.TextblockAt(s.From, s.To)
	if !ok {
		return nil, &StepError{Step: s, Message: "range is not inside a single textblock"}
	}
	removed := block.TextContent()[s.From-start : s.To-start]
	return ReplaceText{From: s.From, To: s.From + len(s.Text), Text: removed}, nil
}

// ReplaceNodes replaces the children between From and To with Nodes. Both
// positions must sit on child boundaries of the same parent.
type ReplaceNodes struct {
	From  int
	To    int
	Nodes []*mdast.Node
}

func (s ReplaceNodes) String() string {
	return fmt.Sprintf("replace nodes [%d:%d]", s.From, s.To)
}

// Apply implements Step.
func (s ReplaceNodes) Apply(doc *mdast.Node) (*mdast.Node, error) {
	out := doc.Clone()
	parent, start, end, ok := out.ChildRange(s.From, s.To)
	if !ok {
		return nil, &StepError{Step: s, Message: "range does not cover whole nodes of one parent"}
	}

	removed := make([]*mdast.Node, 0, end-start)
	for i := start; i < end; i++ {
		removed = append(removed, parent.Child(i))
	}
	anchor := parent.Child(end)
	for _, n := range removed {
		mdast.RemoveChild(parent, n)
	}
	for _, n := range s.Nodes {
		if anchor != nil {
			mdast.InsertBefore(anchor, n.Clone())
		} else {
			mdast.AppendChild(parent, n.Clone())
		}
	}
	return out, nil
}

// Map implements Step.
func (s ReplaceNodes) Map() StepMap {
	size := 0
	for _, n := range s.Nodes {
		size += n.Size()
	}
	return NewStepMap(Span{Start: s.From, OldSize: s.To - s.From, NewSize: size})
}

// Invert implements Step.
func (s ReplaceNodes) Invert(before *mdast.Node) (Step, error) {
	parent, start, end, ok := before.ChildRange(s.From, s.To)
	if !ok {
		return nil, &StepError{Step: s, Message: "range does not cover whole nodes of one parent"}
	}
	removed := make([]*mdast.Node, 0, end-start)
	for i := start; i < end; i++ {
		removed = append(removed, parent.Child(i).Clone())
	}
	return ReplaceNodes{From: s.From, To: s.From + s.Map().spans[0].NewSize, Nodes: removed}, nil
}

// SetLanguage records a detected language on the code block at Pos. It
// moves no positions.
type SetLanguage struct {
	Pos      int
	Language string
}

func (s SetLanguage) String() string {
	return fmt.Sprintf("set language %q at %d", s.Language, s.Pos)
}

// Apply implements Step.
func (s SetLanguage) Apply(doc *mdast.Node) (*mdast.Node, error) {
	out := doc.Clone()
	block := out.NodeAt(s.Pos)
	if block == nil || block.Kind != mdast.NodeCodeBlock {
		return nil, &StepError{Step: s, Message: "no code block at position"}
	}
	if block.Block == nil {
		block.Block = mdast.NewBlockAttrs()
	}
	if block.Block.CodeBlock == nil {
		block.Block.CodeBlock = &mdast.CodeBlockAttrs{InfoOffset: -1}
	}
	block.Block.CodeBlock.Language = s.Language
	return out, nil
}

// Map implements Step.
func (s SetLanguage) Map() StepMap {
	return StepMap{}
}

// Invert implements Step.
func (s SetLanguage) Invert(before *mdast.Node) (Step, error) {
	block := before.NodeAt(s.Pos)
	if block == nil || block.Kind != mdast.NodeCodeBlock {
		return nil, &StepError{Step: s, Message: "no code block at position"}
	}
	var previous string
	if block.Block != nil && block.Block.CodeBlock != nil {
		previous = block.Block.CodeBlock.Language
	}
	return SetLanguage{Pos: s.Pos, Language: previous}, nil
}
