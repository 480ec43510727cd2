package replay

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/editor"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

// Parser parses markdown for insert_nodes steps.
type Parser interface {
	Parse(ctx context.Context, content []byte) (*mdast.Node, error)
}

// StepResult describes what one step did.
type StepResult struct {
	// Index is the 1-based step number.
	Index int
	Step  Step

	// Applied lists the step's transaction followed by any follow-ups.
	Applied []editor.Applied

	// Stats sums the plugin work over Applied.
	Stats highlight.Stats

	// Ranges is the number of decorations after the step.
	Ranges int
}

// FollowUps counts the plugin-queued transactions among Applied.
func (r StepResult) FollowUps() int {
	n := 0
	for _, a := range r.Applied {
		if a.FollowUp {
			n++
		}
	}
	return n
}

// Run applies script to ed step by step. It stops at the first failing
// step; results for the steps before it are returned with the error.
func Run(ctx context.Context, ed *editor.Editor, script *Script, parser Parser) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		applied, err := apply(ctx, ed, step, parser)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Label(), err)
		}

		result := StepResult{
			Index:   i + 1,
			Step:    step,
			Applied: applied,
			Ranges:  ed.Decorations().Len(),
		}
		for _, a := range applied {
			result.Stats = result.Stats.Add(a.Stats)
		}
		results = append(results, result)
	}
	return results, nil
}

func apply(ctx context.Context, ed *editor.Editor, step Step, parser Parser) ([]editor.Applied, error) {
	if step.Op == OpUndo {
		return ed.Undo()
	}

	tr := ed.Begin()
	var err error
	switch step.Op {
	case OpInsertText:
		err = tr.InsertText(step.Pos, step.Text)
	case OpReplaceText:
		err = tr.ReplaceText(step.From, step.To, step.Text)
	case OpDelete:
		err = tr.Delete(step.From, step.To)
	case OpInsertNodes:
		var nodes []*mdast.Node
		nodes, err = parseBlocks(ctx, parser, step.Markdown)
		if err == nil {
			err = tr.InsertNodes(step.Pos, nodes...)
		}
	case OpDeleteNodes:
		err = tr.DeleteNodes(step.From, step.To)
	case OpSetLanguage:
		err = tr.SetLanguage(step.Pos, step.Language)
	default:
		err = fmt.Errorf("unknown op %q", step.Op)
	}
	if err != nil {
		return nil, err
	}

	if step.History != nil {
		tr.SetMeta(transform.MetaAddToHistory, *step.History)
	}
	return ed.Dispatch(tr)
}

// parseBlocks returns detached copies of the top-level blocks of markdown.
func parseBlocks(ctx context.Context, parser Parser, markdown string) ([]*mdast.Node, error) {
	if parser == nil {
		return nil, fmt.Errorf("%s needs a parser", OpInsertNodes)
	}
	doc, err := parser.Parse(ctx, []byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}
	var nodes []*mdast.Node
	for child := doc.FirstChild; child != nil; child = child.Next {
		nodes = append(nodes, child.Clone())
	}
	return nodes, nil
}
