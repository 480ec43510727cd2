package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeDocument)
	first := mdast.NewParagraph("a")
	second := mdast.NewParagraph("b")

	mdast.AppendChild(parent, first)
	mdast.AppendChild(parent, second)

	assert.Same(t, first, parent.FirstChild)
	assert.Same(t, second, parent.LastChild)
	assert.Same(t, second, first.Next)
	assert.Same(t, first, second.Prev)
	assert.Same(t, parent, second.Parent)

	// Re-appending moves the node to the end.
	mdast.AppendChild(parent, first)
	assert.Same(t, second, parent.FirstChild)
	assert.Same(t, first, parent.LastChild)
	assert.Equal(t, 2, parent.ChildCount())
}

func TestAppendChild_NilSafe(t *testing.T) {
	t.Parallel()

	mdast.AppendChild(nil, mdast.NewParagraph("a"))
	mdast.AppendChild(mdast.NewDocument(), nil)
}

func TestInsertBefore(t *testing.T) {
	t.Parallel()

	second := mdast.NewParagraph("b")
	doc := mdast.NewDocument(second)
	first := mdast.NewParagraph("a")

	mdast.InsertBefore(second, first)

	assert.Same(t, first, doc.FirstChild)
	assert.Same(t, second, first.Next)
	assert.Equal(t, "ab", doc.TextContent())

	// A detached sibling is ignored.
	mdast.InsertBefore(mdast.NewParagraph("x"), mdast.NewParagraph("y"))
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	first := mdast.NewParagraph("a")
	middle := mdast.NewParagraph("b")
	last := mdast.NewParagraph("c")
	doc := mdast.NewDocument(first, middle, last)

	mdast.RemoveChild(doc, middle)

	assert.Nil(t, middle.Parent)
	assert.Nil(t, middle.Prev)
	assert.Nil(t, middle.Next)
	assert.Same(t, last, first.Next)
	assert.Equal(t, "ac", doc.TextContent())

	// Removing from the wrong parent is a no-op.
	mdast.RemoveChild(mdast.NewDocument(), first)
	assert.Same(t, doc, first.Parent)
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()

	old := mdast.NewParagraph("old")
	doc := mdast.NewDocument(mdast.NewParagraph("a"), old, mdast.NewParagraph("c"))
	replacement := mdast.NewCodeBlock("", "new")

	mdast.ReplaceChild(doc, old, replacement)

	assert.Equal(t, 3, doc.ChildCount())
	assert.Same(t, replacement, doc.Child(1))
	assert.Nil(t, old.Parent)
	assert.Equal(t, "anewc", doc.TextContent())
}

func TestSetText(t *testing.T) {
	t.Parallel()

	block := mdast.NewCodeBlock("go", "a")
	mdast.AppendChild(block, mdast.NewText("b"))

	mdast.SetText(block, "xyz")
	assert.Equal(t, 1, block.ChildCount())
	assert.Equal(t, "xyz", block.TextContent())

	mdast.SetText(block, "")
	assert.False(t, block.HasChildren())
}

func TestNewCodeBlock(t *testing.T) {
	t.Parallel()

	block := mdast.NewCodeBlock("python", "print(1)")

	assert.Equal(t, mdast.NodeCodeBlock, block.Kind)
	assert.Equal(t, "python", block.Block.CodeBlock.Info)
	assert.Equal(t, -1, block.Block.CodeBlock.InfoOffset)
	assert.Equal(t, "print(1)", block.TextContent())
}
