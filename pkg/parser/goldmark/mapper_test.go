package goldmark

import (
	"testing"

	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mapContent parses content as CommonMark and maps it.
func mapContent(content []byte) *mdast.Node {
	md := goldmark.New()
	reader := text.NewReader(content)
	gmDoc := md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))
	return newMapper(content).mapDocument(gmDoc)
}

func TestMapper_Document(t *testing.T) {
	content := []byte("Hello, world!")
	doc := mapContent(content)

	if doc == nil {
		t.Fatal("expected non-nil document")
	}

	if doc.Kind != mdast.NodeDocument {
		t.Errorf("expected NodeDocument, got %v", doc.Kind)
	}
}

func TestMapper_Heading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   int
	}{
		{"h1", "# Heading 1", 1},
		{"h2", "## Heading 2", 2},
		{"h3", "### Heading 3", 3},
		{"h4", "#### Heading 4", 4},
		{"h5", "##### Heading 5", 5},
		{"h6", "###### Heading 6", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte(tt.content)
			doc := mapContent(content)

			// Find heading node.
			headings := mdast.FindByKind(doc, mdast.NodeHeading)
			if len(headings) != 1 {
				t.Fatalf("expected 1 heading, got %d", len(headings))
			}

			heading := headings[0]
			if heading.Block == nil {
				t.Fatal("expected Block attrs")
			}

			if heading.Block.HeadingLevel != tt.level {
				t.Errorf("heading level = %d, want %d", heading.Block.HeadingLevel, tt.level)
			}
		})
	}
}

func TestMapper_Paragraph(t *testing.T) {
	content := []byte("This is a paragraph.")
	doc := mapContent(content)

	paragraphs := mdast.FindByKind(doc, mdast.NodeParagraph)
	if len(paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paragraphs))
	}
}

func TestMapper_List(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ordered bool
	}{
		{"unordered dash", "- item 1\n- item 2", false},
		{"unordered asterisk", "* item 1\n* item 2", false},
		{"unordered plus", "+ item 1\n+ item 2", false},
		{"ordered", "1. item 1\n2. item 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte(tt.content)
			doc := mapContent(content)

			lists := mdast.FindByKind(doc, mdast.NodeList)
			if len(lists) != 1 {
				t.Fatalf("expected 1 list, got %d", len(lists))
			}

			list := lists[0]
			if list.Block == nil || list.Block.List == nil {
				t.Fatal("expected List attrs")
			}

			if list.Block.List.Ordered != tt.ordered {
				t.Errorf("ordered = %v, want %v", list.Block.List.Ordered, tt.ordered)
			}

			// Check list items.
			items := mdast.FindByKind(list, mdast.NodeListItem)
			if len(items) != 2 {
				t.Errorf("expected 2 list items, got %d", len(items))
			}
		})
	}
}

func TestMapper_Blockquote(t *testing.T) {
	content := []byte("> This is a quote")
	doc := mapContent(content)

	quotes := mdast.FindByKind(doc, mdast.NodeBlockquote)
	if len(quotes) != 1 {
		t.Fatalf("expected 1 blockquote, got %d", len(quotes))
	}
}

func TestMapper_FencedCodeBlock(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		info       string
		text       string
		infoOffset int
	}{
		{"backticks with info", "```go\nfunc main() {}\n```", "go", "func main() {}\n", 3},
		{"no info", "```\nx := 1\n```\n", "", "x := 1\n", 3},
		{"tildes", "~~~~ python title=a.py\nprint(1)\n~~~~", "python title=a.py", "print(1)\n", 4},
		{"after paragraph", "Intro\n\n  ```\na\nb\n  ```", "", "a\nb\n", 12},
		{"empty block", "```\n```", "", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mapContent([]byte(tt.content))

			codeBlocks := mdast.FindByKind(doc, mdast.NodeCodeBlock)
			if len(codeBlocks) != 1 {
				t.Fatalf("expected 1 code block, got %d", len(codeBlocks))
			}

			cb := codeBlocks[0]
			if cb.Block == nil || cb.Block.CodeBlock == nil {
				t.Fatal("expected CodeBlock attrs")
			}
			attrs := cb.Block.CodeBlock

			if attrs.Info != tt.info {
				t.Errorf("info = %q, want %q", attrs.Info, tt.info)
			}
			if attrs.Indented {
				t.Error("expected Indented = false for fenced code block")
			}
			if attrs.InfoOffset != tt.infoOffset {
				t.Errorf("info offset = %d, want %d", attrs.InfoOffset, tt.infoOffset)
			}
			if got := cb.TextContent(); got != tt.text {
				t.Errorf("text = %q, want %q", got, tt.text)
			}
			if cb.ChildCount() > 1 {
				t.Errorf("expected at most one text child, got %d", cb.ChildCount())
			}
		})
	}
}

func TestMapper_IndentedCodeBlock(t *testing.T) {
	content := []byte("    code line 1\n    code line 2")
	doc := mapContent(content)

	codeBlocks := mdast.FindByKind(doc, mdast.NodeCodeBlock)
	if len(codeBlocks) != 1 {
		t.Fatalf("expected 1 code block, got %d", len(codeBlocks))
	}

	cb := codeBlocks[0]
	if cb.Block == nil || cb.Block.CodeBlock == nil {
		t.Fatal("expected CodeBlock attrs")
	}

	if !cb.Block.CodeBlock.Indented {
		t.Error("expected Indented = true for indented code block")
	}
	if cb.Block.CodeBlock.InfoOffset != -1 {
		t.Errorf("info offset = %d, want -1", cb.Block.CodeBlock.InfoOffset)
	}
	if got := cb.TextContent(); got != "code line 1\ncode line 2" {
		t.Errorf("text = %q", got)
	}
}

func TestMapper_ThematicBreak(t *testing.T) {
	content := []byte("---")
	doc := mapContent(content)

	breaks := mdast.FindByKind(doc, mdast.NodeThematicBreak)
	if len(breaks) != 1 {
		t.Fatalf("expected 1 thematic break, got %d", len(breaks))
	}
}

func TestMapper_Text(t *testing.T) {
	content := []byte("Hello, world!")
	doc := mapContent(content)

	texts := mdast.FindByKind(doc, mdast.NodeText)
	if len(texts) == 0 {
		t.Fatal("expected at least one text node")
	}

	// Check that text content is captured (may be split into multiple nodes).
	var allText []byte
	for _, txt := range texts {
		if txt.Inline != nil {
			allText = append(allText, txt.Inline.Text...)
		}
	}

	if string(allText) != "Hello, world!" {
		t.Errorf("combined text = %q, want %q", allText, "Hello, world!")
	}
}

func TestMapper_Emphasis(t *testing.T) {
	content := []byte("*emphasis*")
	doc := mapContent(content)

	emphasis := mdast.FindByKind(doc, mdast.NodeEmphasis)
	if len(emphasis) != 1 {
		t.Fatalf("expected 1 emphasis node, got %d", len(emphasis))
	}

	em := emphasis[0]
	if em.Inline == nil {
		t.Fatal("expected Inline attrs")
	}

	if em.Inline.EmphasisLevel != 1 {
		t.Errorf("emphasis level = %d, want 1", em.Inline.EmphasisLevel)
	}
}

func TestMapper_Strong(t *testing.T) {
	content := []byte("**strong**")
	doc := mapContent(content)

	strong := mdast.FindByKind(doc, mdast.NodeStrong)
	if len(strong) != 1 {
		t.Fatalf("expected 1 strong node, got %d", len(strong))
	}

	strongNode := strong[0]
	if strongNode.Inline == nil {
		t.Fatal("expected Inline attrs")
	}

	if strongNode.Inline.EmphasisLevel != 2 {
		t.Errorf("emphasis level = %d, want 2", strongNode.Inline.EmphasisLevel)
	}
}

func TestMapper_CodeSpan(t *testing.T) {
	content := []byte("Use `code` here")
	doc := mapContent(content)

	codeSpans := mdast.FindByKind(doc, mdast.NodeCodeSpan)
	if len(codeSpans) != 1 {
		t.Fatalf("expected 1 code span, got %d", len(codeSpans))
	}

	cs := codeSpans[0]
	if cs.Inline == nil {
		t.Fatal("expected Inline attrs")
	}

	if string(cs.Inline.Text) != "code" {
		t.Errorf("code span text = %q, want %q", cs.Inline.Text, "code")
	}
}

func TestMapper_Link(t *testing.T) {
	content := []byte("[text](https://example.com)")
	doc := mapContent(content)

	links := mdast.FindByKind(doc, mdast.NodeLink)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}

	link := links[0]
	if link.Inline == nil || link.Inline.Link == nil {
		t.Fatal("expected Link attrs")
	}

	if link.Inline.Link.Destination != "https://example.com" {
		t.Errorf("destination = %q, want %q", link.Inline.Link.Destination, "https://example.com")
	}
}

func TestMapper_LinkWithTitle(t *testing.T) {
	content := []byte(`[text](https://example.com "Title")`)
	doc := mapContent(content)

	links := mdast.FindByKind(doc, mdast.NodeLink)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}

	link := links[0]
	if link.Inline == nil || link.Inline.Link == nil {
		t.Fatal("expected Link attrs")
	}

	if link.Inline.Link.Title != "Title" {
		t.Errorf("title = %q, want %q", link.Inline.Link.Title, "Title")
	}
}

func TestMapper_Image(t *testing.T) {
	content := []byte("![alt text](image.png)")
	doc := mapContent(content)

	images := mdast.FindByKind(doc, mdast.NodeImage)
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}

	img := images[0]
	if img.Inline == nil || img.Inline.Link == nil {
		t.Fatal("expected Link attrs for image")
	}

	if img.Inline.Link.Destination != "image.png" {
		t.Errorf("destination = %q, want %q", img.Inline.Link.Destination, "image.png")
	}
}

func TestMapper_NestedStructure(t *testing.T) {
	content := []byte(`# Heading

Paragraph with *emphasis* and **strong**.

- Item 1
- Item 2
  - Nested item
`)

	doc := mapContent(content)

	// Check document structure.
	if doc.Kind != mdast.NodeDocument {
		t.Errorf("expected NodeDocument, got %v", doc.Kind)
	}

	// Should have heading, paragraph, and list as direct children.
	headings := mdast.FindByKind(doc, mdast.NodeHeading)
	if len(headings) != 1 {
		t.Errorf("expected 1 heading, got %d", len(headings))
	}

	paragraphs := mdast.FindByKind(doc, mdast.NodeParagraph)
	if len(paragraphs) < 1 {
		t.Errorf("expected at least 1 paragraph, got %d", len(paragraphs))
	}

	lists := mdast.FindByKind(doc, mdast.NodeList)
	if len(lists) < 1 {
		t.Errorf("expected at least 1 list, got %d", len(lists))
	}

	// Check inline elements.
	emphasis := mdast.FindByKind(doc, mdast.NodeEmphasis)
	if len(emphasis) != 1 {
		t.Errorf("expected 1 emphasis, got %d", len(emphasis))
	}

	strong := mdast.FindByKind(doc, mdast.NodeStrong)
	if len(strong) != 1 {
		t.Errorf("expected 1 strong, got %d", len(strong))
	}
}

func TestMapper_ParentChildRelationships(t *testing.T) {
	content := []byte("# Heading\n\nParagraph")
	doc := mapContent(content)

	// Document should be parent of heading.
	headings := mdast.FindByKind(doc, mdast.NodeHeading)
	if len(headings) != 1 {
		t.Fatal("expected 1 heading")
	}

	heading := headings[0]
	if heading.Parent != doc {
		t.Error("heading parent should be document")
	}

	// Check sibling relationships.
	paragraphs := mdast.FindByKind(doc, mdast.NodeParagraph)
	if len(paragraphs) != 1 {
		t.Fatal("expected 1 paragraph")
	}

	para := paragraphs[0]
	if para.Parent != doc {
		t.Error("paragraph parent should be document")
	}

	// Heading and paragraph should be siblings.
	if heading.Next != para {
		t.Error("heading.Next should be paragraph")
	}

	if para.Prev != heading {
		t.Error("paragraph.Prev should be heading")
	}
}

func TestMapper_LineBreaks(t *testing.T) {
	doc := mapContent([]byte("one\ntwo  \nthree"))

	para := doc.FirstChild
	if para == nil || para.Kind != mdast.NodeParagraph {
		t.Fatal("expected a paragraph")
	}

	var kinds []mdast.NodeKind
	for child := para.FirstChild; child != nil; child = child.Next {
		kinds = append(kinds, child.Kind)
	}
	want := []mdast.NodeKind{
		mdast.NodeText, mdast.NodeSoftBreak,
		mdast.NodeText, mdast.NodeHardBreak,
		mdast.NodeText,
	}
	if len(kinds) != len(want) {
		t.Fatalf("children = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("child %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if got := para.TextContent(); got != "onetwothree" {
		t.Errorf("text = %q, want %q", got, "onetwothree")
	}
}
