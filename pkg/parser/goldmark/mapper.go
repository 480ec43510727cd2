package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}
		// Line breaks follow the text they end.
		if t, ok := child.(*ast.Text); ok {
			switch {
			case t.HardLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
			case t.SoftLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node. It returns nil
// for nodes without a counterpart.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gmn.Level)
		m.mapChildren(gmNode, node)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapCodeBlock(gmn, &mdast.CodeBlockAttrs{Indented: true, InfoOffset: -1})

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)

	// Inline-level nodes.
	case *ast.Text:
		node = m.textNode(gmn.Value(m.content))

	case *ast.String:
		node = m.textNode(gmn.Value)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmNode, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmNode, node)

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.URL(m.content)),
		})
		mdast.AppendChild(node, mdast.NewText(string(gmn.Label(m.content))))

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)

	// GFM extension nodes.
	case *east.TaskCheckBox:
		return nil

	case *east.Strikethrough, *east.Table, *east.TableHeader, *east.TableRow, *east.TableCell:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

// textNode returns nil for empty text, which would occupy no positions.
func (m *mapper) textNode(value []byte) *mdast.Node {
	if len(value) == 0 {
		return nil
	}
	return mdast.NewText(string(value))
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(listAttrs)
	m.mapChildren(list, node)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	attrs := &mdast.CodeBlockAttrs{InfoOffset: m.infoOffset(codeBlock)}
	if codeBlock.Info != nil {
		attrs.Info = string(codeBlock.Info.Value(m.content))
	}
	return m.mapCodeBlock(codeBlock, attrs)
}

// mapCodeBlock builds a code block holding the block's lines as one text
// child.
func (m *mapper) mapCodeBlock(gmNode ast.Node, attrs *mdast.CodeBlockAttrs) *mdast.Node {
	var buf bytes.Buffer
	lines := gmNode.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}

	node := mdast.NewCodeBlock("", buf.String())
	node.Block.CodeBlock = attrs
	return node
}

// infoOffset finds the byte offset right after the opening fence: behind
// the info string if there is one, or at the end of the line before the
// first content line. Returns -1 when the fence cannot be located.
func (m *mapper) infoOffset(codeBlock *ast.FencedCodeBlock) int {
	var end int
	switch {
	case codeBlock.Info != nil:
		end = codeBlock.Info.Segment.Start
	case codeBlock.Lines().Len() > 0:
		end = lineStart(m.content, codeBlock.Lines().At(0).Start) - 1
		if end < 0 {
			return -1
		}
		if end > 0 && m.content[end-1] == '\r' {
			end--
		}
	default:
		return -1
	}
	return m.fenceEnd(end)
}

// fenceEnd looks back from end, past whitespace, for a run of at least
// three fence characters and returns the offset right after it, or -1.
func (m *mapper) fenceEnd(end int) int {
	pos := end
	for pos > 0 && (m.content[pos-1] == ' ' || m.content[pos-1] == '\t') {
		pos--
	}
	if pos == 0 {
		return -1
	}

	fenceChar := m.content[pos-1]
	if fenceChar != '`' && fenceChar != '~' {
		return -1
	}

	fenceLength := 0
	for i := pos; i > 0 && m.content[i-1] == fenceChar; i-- {
		fenceLength++
	}
	if fenceLength < 3 {
		return -1
	}
	return pos
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(content []byte, pos int) int {
	for pos > 0 && content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// mapEmphasis converts a goldmark Emphasis node to an mdast node.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	var node *mdast.Node

	if emphasis.Level == 2 {
		node = mdast.NewNode(mdast.NodeStrong)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(2)
	} else {
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(1)
	}

	m.mapChildren(emphasis, node)
	return node
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			text = append(text, textNode.Value(m.content)...)
		}
	}

	node.Inline = mdast.NewInlineAttrs().WithText(text)
	return node
}
