package runner

import (
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

// LanguageEdits returns source edits that write the detected language of
// every fenced code block without an info string right after its opening
// fence. Blocks whose fence offset is unknown are left alone.
func LanguageEdits(doc *mdast.Node) []transform.Edit {
	builder := transform.NewEditBuilder()
	doc.Descendants(func(n *mdast.Node, _ int) bool {
		if n.Kind != mdast.NodeCodeBlock {
			return true
		}
		if n.Block == nil || n.Block.CodeBlock == nil {
			return false
		}
		attrs := n.Block.CodeBlock
		if attrs.Indented || attrs.InfoOffset < 0 || attrs.Params() != "" || attrs.Language == "" {
			return false
		}
		builder.Insert(attrs.InfoOffset, attrs.Language)
		return false
	})
	return builder.Edits
}
