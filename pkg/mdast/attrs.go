package mdast

import "strings"

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character used ("-", "+", "*").
	BulletMarker string

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// Info is the fence info string ("params"), e.g. "go title=main.go".
	Info string

	// Language is a language detected for the block and written back
	// onto the document. Empty until detection ran.
	Language string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool

	// InfoOffset is the source byte offset right after the opening fence
	// characters, where an info string can be inserted. -1 when unknown.
	InfoOffset int
}

// Params returns the first whitespace-delimited token of the info string.
func (a *CodeBlockAttrs) Params() string {
	if a == nil {
		return ""
	}
	fields := strings.Fields(a.Info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText and NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithEmphasisLevel sets the emphasis level and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}

func (a *BlockAttrs) clone() *BlockAttrs {
	if a == nil {
		return nil
	}
	out := &BlockAttrs{HeadingLevel: a.HeadingLevel}
	if a.List != nil {
		list := *a.List
		out.List = &list
	}
	if a.CodeBlock != nil {
		code := *a.CodeBlock
		out.CodeBlock = &code
	}
	return out
}

func (a *InlineAttrs) clone() *InlineAttrs {
	if a == nil {
		return nil
	}
	out := &InlineAttrs{EmphasisLevel: a.EmphasisLevel}
	if a.Text != nil {
		out.Text = append([]byte(nil), a.Text...)
	}
	if a.Link != nil {
		link := *a.Link
		out.Link = &link
	}
	return out
}
