package highlight

import (
	"fmt"
	"iter"

	"github.com/yaklabco/gomdhl/pkg/tokentree"
)

// IntegrityError reports a token stream whose scopes do not nest: a close
// without a matching open, or scopes left open at the end.
type IntegrityError struct {
	// Scope is the scope being closed. Empty for scopes left open.
	Scope string

	// Open is the scope found on top of the stack, if any.
	Open string

	// Unclosed counts scopes still open when the stream ended.
	Unclosed int

	// Pos is the document position of the renderer when the error occurred.
	Pos int

	// Block and Language identify the block being rendered. They are set
	// by Compute.
	Block    BlockPos
	Language string
	located  bool
}

func (e *IntegrityError) Error() string {
	var msg string
	switch {
	case e.Unclosed > 0:
		msg = fmt.Sprintf("%d scope(s) left open at %d", e.Unclosed, e.Pos)
	case e.Open == "" && e.Scope == "":
		msg = fmt.Sprintf("close without open at %d", e.Pos)
	case e.Open == "":
		msg = fmt.Sprintf("close %q without open at %d", e.Scope, e.Pos)
	default:
		msg = fmt.Sprintf("close %q does not match open %q at %d", e.Scope, e.Open, e.Pos)
	}
	if e.located {
		return fmt.Sprintf("malformed token tree for block at %s (language %q): %s", e.Block, e.Language, msg)
	}
	return "malformed token tree: " + msg
}

// Render converts a token event stream into ranges. anchor is the position
// of the block that holds the text; its content starts at anchor+1.
//
// Ranges are returned in the order their scopes close. Ranges with an empty
// scope, such as the tree root, are included.
func Render(events iter.Seq[tokentree.Event], anchor int, prefix string) ([]Range, error) {
	var (
		stack  []Range
		out    []Range
		cursor = anchor + 1
	)
	for ev := range events {
		switch ev.Kind {
		case tokentree.EventText:
			if len(stack) > 0 {
				cursor += len(ev.Text)
			}
		case tokentree.EventOpen:
			stack = append(stack, Range{
				From:    cursor,
				Scope:   ev.Scope,
				Classes: tokentree.ClassName(ev.Scope, ev.Sublanguage, prefix),
			})
		case tokentree.EventClose:
			if len(stack) == 0 {
				return nil, &IntegrityError{Scope: ev.Scope, Pos: cursor}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.Scope != ev.Scope {
				return nil, &IntegrityError{Scope: ev.Scope, Open: top.Scope, Pos: cursor}
			}
			top.To = cursor
			out = append(out, top)
		}
	}
	if len(stack) > 0 {
		return nil, &IntegrityError{Unclosed: len(stack), Open: stack[len(stack)-1].Scope, Pos: cursor}
	}
	return out, nil
}
