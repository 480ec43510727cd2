package editor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/editor"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

const goMain = "package main\n\nfunc main() {}\n"

// sampleDoc holds a paragraph at 0 (size 7) and a JavaScript block at 7.
func sampleDoc() *mdast.Node {
	return mdast.NewDocument(
		mdast.NewParagraph("intro"),
		mdast.NewCodeBlock("javascript", `console.log("hi");`),
	)
}

func newEditor(t *testing.T, doc *mdast.Node, opts ...editor.Option) (*editor.Editor, []editor.Applied) {
	t.Helper()

	ed, applied, err := editor.New(doc, highlighter.New(), highlight.PluginConfig{}, opts...)
	require.NoError(t, err)
	return ed, applied
}

func assertFreshDecorations(t *testing.T, ed *editor.Editor) {
	t.Helper()

	p := highlight.NewPlugin(highlighter.New(), highlight.PluginConfig{})
	fresh, err := p.Init(ed.Doc())
	require.NoError(t, err)
	if diff := cmp.Diff(fresh.Decorations.Ranges(), ed.Decorations().Ranges()); diff != "" {
		t.Errorf("decorations differ from a full computation (-full +editor):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	ed, applied := newEditor(t, doc)

	assert.Empty(t, applied)
	assert.Same(t, doc, ed.Doc())
	assert.Equal(t, highlight.Stats{Rendered: 1}, ed.State().Highlight.Stats)
	assert.Positive(t, ed.Decorations().Len())
	assert.Empty(t, ed.History())
}

func TestNew_AppliesDetectedLanguages(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument(mdast.NewCodeBlock("", goMain))
	ed, applied := newEditor(t, doc)

	require.Len(t, applied, 1)
	assert.True(t, applied[0].FollowUp)
	assert.False(t, applied[0].Transaction.AddToHistory())
	assert.Equal(t, highlight.Stats{Rendered: 1, Detected: 1}, ed.InitStats())
	assert.Equal(t, "go", ed.Doc().FirstChild.Block.CodeBlock.Language)
	assert.Empty(t, ed.History(), "write-back is not undoable")
	assertFreshDecorations(t, ed)
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	ed, _ := newEditor(t, sampleDoc())

	tr := ed.Begin()
	require.NoError(t, tr.InsertText(2, "xy"))
	applied, err := ed.Dispatch(tr)
	require.NoError(t, err)

	require.Len(t, applied, 1)
	assert.Equal(t, highlight.Stats{Reused: 1}, applied[0].Stats)
	assert.Same(t, tr.Doc(), ed.Doc())
	assert.Equal(t, []*transform.Transaction{tr}, ed.History())
	assertFreshDecorations(t, ed)
}

func TestDispatch_Stale(t *testing.T) {
	t.Parallel()

	ed, _ := newEditor(t, sampleDoc())

	stale := ed.Begin()
	require.NoError(t, stale.InsertText(1, "a"))

	tr := ed.Begin()
	require.NoError(t, tr.InsertText(1, "b"))
	_, err := ed.Dispatch(tr)
	require.NoError(t, err)

	_, err = ed.Dispatch(stale)
	require.ErrorIs(t, err, editor.ErrStale)
	assert.Same(t, tr.Doc(), ed.Doc())
}

func TestDispatch_FollowUps(t *testing.T) {
	t.Parallel()

	ed, _ := newEditor(t, sampleDoc())

	// Insert an unlabelled Go block after the JavaScript block.
	tr := ed.Begin()
	require.NoError(t, tr.InsertNodes(27, mdast.NewCodeBlock("", goMain)))
	applied, err := ed.Dispatch(tr)
	require.NoError(t, err)

	require.Len(t, applied, 2)
	assert.Same(t, tr, applied[0].Transaction)
	assert.False(t, applied[0].FollowUp)
	assert.Equal(t, highlight.Stats{Reused: 1, Rendered: 1, Detected: 1}, applied[0].Stats)

	followUp := applied[1]
	assert.True(t, followUp.FollowUp)
	detected, _ := followUp.Transaction.Meta(transform.MetaDetectedLanguages)
	assert.Equal(t, true, detected)
	assert.Equal(t, highlight.Stats{Reused: 1, Rendered: 1, Evicted: 1}, followUp.Stats)

	assert.Equal(t, "go", ed.Doc().NodeAt(27).Block.CodeBlock.Language)
	assert.Len(t, ed.History(), 1)
	assertFreshDecorations(t, ed)
}

func TestUndo(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	ed, _ := newEditor(t, doc)

	tr := ed.Begin()
	require.NoError(t, tr.InsertNodes(27, mdast.NewCodeBlock("", goMain)))
	_, err := ed.Dispatch(tr)
	require.NoError(t, err)

	applied, err := ed.Undo()
	require.NoError(t, err)

	require.Len(t, applied, 1)
	assert.False(t, applied[0].Transaction.AddToHistory())
	assert.True(t, doc.Equal(ed.Doc()), "undo restores the original document")
	assert.Empty(t, ed.History())
	assertFreshDecorations(t, ed)

	_, err = ed.Undo()
	require.ErrorIs(t, err, editor.ErrNothingToUndo)
}

func TestUndo_TextEdit(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	ed, _ := newEditor(t, doc)

	for _, text := range []string{"a", "b"} {
		tr := ed.Begin()
		require.NoError(t, tr.InsertText(9, text))
		_, err := ed.Dispatch(tr)
		require.NoError(t, err)
	}
	require.Len(t, ed.History(), 2)

	_, err := ed.Undo()
	require.NoError(t, err)
	assert.Equal(t, "caonsole", ed.Doc().NodeAt(7).TextContent()[:8])

	_, err = ed.Undo()
	require.NoError(t, err)
	assert.True(t, doc.Equal(ed.Doc()))
}

func TestNew_TooManyFollowUps(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument(mdast.NewCodeBlock("", goMain))
	_, _, err := editor.New(doc, highlighter.New(), highlight.PluginConfig{}, editor.WithMaxFollowUps(0))
	require.ErrorIs(t, err, editor.ErrTooManyFollowUps)
}
