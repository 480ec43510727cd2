package replay_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/internal/replay"
	"github.com/yaklabco/gomdhl/pkg/editor"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/parser/goldmark"
)

// The code block sits at 0 and its text starts at 1.
const source = "```go\npackage main\n```\n"

const script = `
steps:
  - name: type after main
    op: insert_text
    pos: 13
    text: "x"
  - op: insert_nodes
    pos: 16
    markdown: "Some *text*.\n"
  - name: unlabelled block
    op: insert_nodes
    pos: 0
    markdown: "` + "```" + `\npackage main\n\nfunc main() {}\n` + "```" + `\n"
  - op: undo
`

func newEditor(t *testing.T, parser *goldmark.Parser) *editor.Editor {
	t.Helper()

	doc, err := parser.Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	ed, _, err := editor.New(doc, highlighter.New(), highlight.PluginConfig{})
	require.NoError(t, err)
	return ed
}

func TestRun(t *testing.T) {
	t.Parallel()

	parser := goldmark.New("commonmark")
	ed := newEditor(t, parser)
	sc, err := replay.Parse([]byte(script))
	require.NoError(t, err)

	results, err := replay.Run(context.Background(), ed, sc, parser)
	require.NoError(t, err)
	require.Len(t, results, 4)

	typed := results[0]
	assert.Equal(t, 1, typed.Index)
	assert.Equal(t, "type after main", typed.Step.Label())
	assert.Equal(t, 1, typed.Stats.Rendered)
	assert.Zero(t, typed.Stats.Reused)
	assert.Positive(t, typed.Ranges)

	paragraph := results[1]
	assert.Equal(t, "insert_nodes", paragraph.Step.Label())
	assert.Equal(t, highlight.Stats{Reused: 1}, paragraph.Stats)
	assert.Zero(t, paragraph.FollowUps())

	detected := results[2]
	require.Len(t, detected.Applied, 2)
	assert.Equal(t, 1, detected.FollowUps())
	assert.Equal(t, 1, detected.Stats.Detected)

	undone := results[3]
	assert.Equal(t, "undo", undone.Step.Label())

	first := ed.Doc().FirstChild
	require.Equal(t, mdast.NodeCodeBlock, first.Kind)
	assert.Equal(t, "go", first.Block.CodeBlock.Params())
	assert.Equal(t, "package mainx\n", first.TextContent())
	assert.Equal(t, mdast.NodeParagraph, first.Next.Kind)
}

func TestRun_StopsAtFailingStep(t *testing.T) {
	t.Parallel()

	parser := goldmark.New("commonmark")
	ed := newEditor(t, parser)
	sc := &replay.Script{Steps: []replay.Step{
		{Op: replay.OpInsertText, Pos: 1, Text: "// "},
		{Name: "bad range", Op: replay.OpDeleteNodes, From: 3, To: 5},
		{Op: replay.OpInsertText, Pos: 1, Text: "never"},
	}}

	results, err := replay.Run(context.Background(), ed, sc, parser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2 (bad range)")
	assert.Len(t, results, 1)
	assert.Equal(t, "// package main\n", ed.Doc().FirstChild.TextContent())
}

func TestRun_OutsideHistory(t *testing.T) {
	t.Parallel()

	parser := goldmark.New("commonmark")
	ed := newEditor(t, parser)
	sc := &replay.Script{Steps: []replay.Step{
		{Op: replay.OpInsertText, Pos: 1, Text: "x", History: new(bool)},
		{Op: replay.OpUndo},
	}}

	_, err := replay.Run(context.Background(), ed, sc, parser)
	require.ErrorIs(t, err, editor.ErrNothingToUndo)
}

func TestRun_SetLanguage(t *testing.T) {
	t.Parallel()

	parser := goldmark.New("commonmark")
	ed := newEditor(t, parser)
	sc := &replay.Script{Steps: []replay.Step{
		{Op: replay.OpSetLanguage, Pos: 0, Language: "python"},
	}}

	_, err := replay.Run(context.Background(), ed, sc, parser)
	require.NoError(t, err)
	assert.Equal(t, "python", ed.Doc().FirstChild.Block.CodeBlock.Language)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	parser := goldmark.New("commonmark")
	ed := newEditor(t, parser)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := replay.Run(ctx, ed, &replay.Script{Steps: []replay.Step{{Op: replay.OpUndo}}}, parser)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRun_InsertNodesWithoutParser(t *testing.T) {
	t.Parallel()

	ed := newEditor(t, goldmark.New("commonmark"))
	sc := &replay.Script{Steps: []replay.Step{{Op: replay.OpInsertNodes, Markdown: "x\n"}}}

	_, err := replay.Run(context.Background(), ed, sc, nil)
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "steps: []\n", "no steps"},
		{"unknown field", "steps:\n  - op: undo\n    bogus: 1\n", "bogus"},
		{"missing op", "steps:\n  - pos: 1\n", "op is required"},
		{"unknown op", "steps:\n  - op: paste\n", `unknown op "paste"`},
		{"insert without text", "steps:\n  - op: insert_text\n    pos: 1\n", "text is required"},
		{"reversed range", "steps:\n  - op: delete\n    from: 5\n    to: 2\n", "from 5 is after to 2"},
		{"nodes without markdown", "steps:\n  - op: insert_nodes\n", "markdown is required"},
		{"language missing", "steps:\n  - op: set_language\n", "language is required"},
		{"malformed", "steps: [", "parse script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := replay.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "edits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

	sc, err := replay.Load(path)
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 4)
	assert.Equal(t, replay.OpUndo, sc.Steps[3].Op)

	_, err = replay.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
