package highlight

import (
	"cmp"
	"errors"
	"fmt"
	"iter"

	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/tokentree"
)

// Highlighter tokenizes text.
type Highlighter interface {
	Highlight(text, language string) (highlighter.Result, error)
	HighlightAuto(text string) (highlighter.Result, error)
	Known(language string) bool
}

// Hooks lets a caller take part in Compute.
type Hooks interface {
	// Lookup returns ranges to use for b instead of rendering it.
	Lookup(b Block) ([]Range, bool)

	// Store observes the ranges rendered for b.
	Store(b Block, ranges []Range)

	// Detected observes a language found by autodetection for b.
	Detected(b Block, language string)
}

// HookFuncs adapts functions to Hooks. Nil members do nothing.
type HookFuncs struct {
	LookupFunc   func(b Block) ([]Range, bool)
	StoreFunc    func(b Block, ranges []Range)
	DetectedFunc func(b Block, language string)
}

// Lookup implements Hooks.
func (h HookFuncs) Lookup(b Block) ([]Range, bool) {
	if h.LookupFunc == nil {
		return nil, false
	}
	return h.LookupFunc(b)
}

// Store implements Hooks.
func (h HookFuncs) Store(b Block, ranges []Range) {
	if h.StoreFunc != nil {
		h.StoreFunc(b, ranges)
	}
}

// Detected implements Hooks.
func (h HookFuncs) Detected(b Block, language string) {
	if h.DetectedFunc != nil {
		h.DetectedFunc(b, language)
	}
}

// LanguageFunc returns the language a block is written in, or "" when the
// block names none.
type LanguageFunc func(n *mdast.Node) string

// DefaultLanguage reads the first word of a code block's info string and
// falls back to a language previously detected for the block.
func DefaultLanguage(n *mdast.Node) string {
	if n == nil || n.Block == nil || n.Block.CodeBlock == nil {
		return ""
	}
	if params := n.Block.CodeBlock.Params(); params != "" {
		return params
	}
	return n.Block.CodeBlock.Language
}

// ComputeOptions configures Compute.
type ComputeOptions struct {
	// NodeTypes lists the node kinds to highlight, e.g. "code_block".
	NodeTypes []string

	// Language extracts the language of a block.
	Language LanguageFunc

	// Hooks is optional.
	Hooks Hooks
}

// Compute returns the ranges of every block of doc selected by
// opts.NodeTypes.
//
// A block whose language is named but unknown to hl is skipped. A block
// without a language is autodetected and Hooks.Detected is told about the
// result. Missing inputs produce no ranges and no error. A malformed token
// tree fails the whole computation with an *IntegrityError.
func Compute(doc *mdast.Node, hl Highlighter, opts ComputeOptions) ([]Range, error) {
	if doc == nil || hl == nil || len(opts.NodeTypes) == 0 || opts.Language == nil {
		return nil, nil
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = HookFuncs{}
	}

	var out []Range
	for _, b := range Locate(doc, opts.NodeTypes) {
		if cached, ok := hooks.Lookup(b); ok {
			out = append(out, cached...)
			continue
		}

		ranges, ok, err := renderBlock(b, hl, opts.Language, hooks)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		hooks.Store(b, ranges)
		out = append(out, ranges...)
	}
	return out, nil
}

// renderBlock highlights one block. ok is false when the block names an
// unknown language.
func renderBlock(b Block, hl Highlighter, language LanguageFunc, hooks Hooks) ([]Range, bool, error) {
	lang := language(b.Node)
	text := b.Node.TextContent()

	var (
		result highlighter.Result
		err    error
	)
	if lang != "" {
		if !hl.Known(lang) {
			return nil, false, nil
		}
		result, err = hl.Highlight(text, lang)
	} else {
		result, err = hl.HighlightAuto(text)
		if err == nil && result.Language != "" {
			hooks.Detected(b, result.Language)
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("highlight block at %s: %w", b.Pos, err)
	}

	ranges, err := renderEvents(b, cmp.Or(lang, result.Language), result.Tree.Events(), result.ClassPrefix)
	if err != nil {
		return nil, false, err
	}
	return ranges, true, nil
}

// renderEvents renders the events of block b and keeps the scoped ranges.
// An *IntegrityError is annotated with the block and language.
func renderEvents(b Block, lang string, events iter.Seq[tokentree.Event], prefix string) ([]Range, error) {
	rendered, err := Render(events, b.Pos.anchor(), prefix)
	if err != nil {
		var ie *IntegrityError
		if errors.As(err, &ie) {
			ie.Block, ie.Language, ie.located = b.Pos, lang, true
		}
		return nil, err
	}

	ranges := rendered[:0]
	for _, r := range rendered {
		if r.Scope != "" {
			ranges = append(ranges, r)
		}
	}
	if b.Pos.IsWholeDocument() {
		ranges = NewTextMap(b.Node, 0).Positions(ranges)
	}
	return ranges, nil
}
