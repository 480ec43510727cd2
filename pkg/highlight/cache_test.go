package highlight_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

const csharpVar = `var x = "y";`

// twoBlockDoc holds a JavaScript block at 0 (size 20) and a C# block at 20
// (size 14).
func twoBlockDoc() *mdast.Node {
	return mdast.NewDocument(
		mdast.NewCodeBlock("javascript", jsHello),
		mdast.NewCodeBlock("csharp", csharpVar),
	)
}

func populate(t *testing.T, doc *mdast.Node) *highlight.Cache {
	t.Helper()

	cache := highlight.NewCache()
	opts := codeOptions()
	opts.Hooks = highlight.HookFuncs{StoreFunc: cache.Store}
	_, err := highlight.Compute(doc, highlighter.New(), opts)
	require.NoError(t, err)
	return cache
}

func shifted(ranges []highlight.Range, by int) []highlight.Range {
	out := make([]highlight.Range, len(ranges))
	for i, r := range ranges {
		r.From += by
		r.To += by
		out[i] = r
	}
	return out
}

func TestCache_CRUD(t *testing.T) {
	t.Parallel()

	cache := highlight.NewCache()
	node := mdast.NewCodeBlock("go", "x")
	decos := []highlight.Range{rng(1, 2, "keyword")}

	cache.Set(highlight.At(4), node, decos)
	cache.Set(highlight.At(0), node, nil)
	cache.Set(highlight.WholeDocument, node, nil)

	entry, ok := cache.Get(highlight.At(4))
	require.True(t, ok)
	assert.Same(t, node, entry.Node)
	assert.Equal(t, decos, entry.Decorations)
	assert.Equal(t, []highlight.BlockPos{highlight.WholeDocument, highlight.At(0), highlight.At(4)}, cache.Positions())

	cache.Replace(highlight.At(4), highlight.At(9), node, decos)
	_, ok = cache.Get(highlight.At(4))
	assert.False(t, ok)
	_, ok = cache.Get(highlight.At(9))
	assert.True(t, ok)

	cache.Remove(highlight.At(9))
	cache.Remove(highlight.At(100))
	assert.Equal(t, 2, cache.Len())

	var nilCache *highlight.Cache
	assert.Zero(t, nilCache.Len())
	_, ok = nilCache.Get(highlight.At(0))
	assert.False(t, ok)
}

func TestCache_InvalidateWithoutChange(t *testing.T) {
	t.Parallel()

	doc := twoBlockDoc()
	cache := populate(t, doc)
	require.Equal(t, 2, cache.Len())

	next := cache.Invalidate(transform.New(doc))

	assert.Equal(t, cache.Positions(), next.Positions())
	for _, pos := range cache.Positions() {
		before, _ := cache.Get(pos)
		after, _ := next.Get(pos)
		assert.Same(t, before.Node, after.Node)
		if diff := cmp.Diff(before.Decorations, after.Decorations); diff != "" {
			t.Errorf("entry %s changed (-before +after):\n%s", pos, diff)
		}
	}
}

func TestCache_InvalidateEditedBlock(t *testing.T) {
	t.Parallel()

	doc := twoBlockDoc()
	cache := populate(t, doc)
	csharp, ok := cache.Get(highlight.At(20))
	require.True(t, ok)
	require.NotEmpty(t, csharp.Decorations)

	tr := transform.New(doc)
	require.NoError(t, tr.InsertText(5, "abc"))

	next := cache.Invalidate(tr)

	assert.Equal(t, []highlight.BlockPos{highlight.At(23)}, next.Positions(), "edited block is evicted, the other moves")
	moved, ok := next.Get(highlight.At(23))
	require.True(t, ok)
	assert.Same(t, tr.Doc().NodeAt(23), moved.Node)
	if diff := cmp.Diff(shifted(csharp.Decorations, 3), moved.Decorations); diff != "" {
		t.Errorf("moved decorations mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, cache.Len(), "receiver is unchanged")
}

func TestCache_InvalidateLaterBlock(t *testing.T) {
	t.Parallel()

	doc := twoBlockDoc()
	cache := populate(t, doc)
	js, _ := cache.Get(highlight.At(0))

	tr := transform.New(doc)
	require.NoError(t, tr.InsertText(25, "z"))

	next := cache.Invalidate(tr)

	assert.Equal(t, []highlight.BlockPos{highlight.At(0)}, next.Positions())
	kept, _ := next.Get(highlight.At(0))
	assert.Same(t, js.Node, kept.Node, "unmoved entries are kept as is")
	assert.Equal(t, js.Decorations, kept.Decorations)
}

func TestCache_InvalidateMovedBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(tr *transform.Transaction) error
		shift int
	}{
		{
			name: "insert paragraph before",
			edit: func(tr *transform.Transaction) error {
				return tr.InsertNodes(0, mdast.NewParagraph("hello"))
			},
			shift: 7,
		},
		{
			// Old position 20 becomes the JavaScript block's new key while
			// the C# block is still keyed there.
			name: "shift by exactly one block",
			edit: func(tr *transform.Transaction) error {
				return tr.InsertNodes(0, mdast.NewParagraph(strings.Repeat("p", 18)))
			},
			shift: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := twoBlockDoc()
			cache := populate(t, doc)
			tr := transform.New(doc)
			require.NoError(t, tt.edit(tr))

			next := cache.Invalidate(tr)

			want := []highlight.BlockPos{highlight.At(tt.shift), highlight.At(20 + tt.shift)}
			require.Equal(t, want, next.Positions())
			for _, old := range []int{0, 20} {
				before, _ := cache.Get(highlight.At(old))
				after, _ := next.Get(highlight.At(old + tt.shift))
				assert.True(t, before.Node.Equal(after.Node))
				if diff := cmp.Diff(shifted(before.Decorations, tt.shift), after.Decorations); diff != "" {
					t.Errorf("block from %d mismatch (-want +got):\n%s", old, diff)
				}
			}
		})
	}
}

func TestCache_InvalidateDeletedBlock(t *testing.T) {
	t.Parallel()

	doc := twoBlockDoc()
	cache := populate(t, doc)
	csharp, _ := cache.Get(highlight.At(20))

	tr := transform.New(doc)
	require.NoError(t, tr.DeleteNodes(0, 20))

	next := cache.Invalidate(tr)

	// The C# block takes over key 0 from the deleted JavaScript entry.
	require.Equal(t, []highlight.BlockPos{highlight.At(0)}, next.Positions())
	after, _ := next.Get(highlight.At(0))
	assert.Equal(t, "csharp", after.Node.Block.CodeBlock.Info)
	if diff := cmp.Diff(shifted(csharp.Decorations, -20), after.Decorations); diff != "" {
		t.Errorf("decorations mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_InvalidateLanguageChange(t *testing.T) {
	t.Parallel()

	doc := twoBlockDoc()
	cache := populate(t, doc)

	tr := transform.New(doc)
	require.NoError(t, tr.SetLanguage(20, "java"))

	next := cache.Invalidate(tr)
	assert.Equal(t, []highlight.BlockPos{highlight.At(0)}, next.Positions())
}

func TestCache_InvalidateWholeDocument(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument(mdast.NewParagraph("let a = 1;"))
	cache := highlight.NewCache()
	cache.Set(highlight.WholeDocument, doc, []highlight.Range{rng(0, 3, "keyword")})

	assert.Equal(t, 1, cache.Invalidate(transform.New(doc)).Len())

	tr := transform.New(doc)
	require.NoError(t, tr.InsertText(1, "x"))
	assert.Zero(t, cache.Invalidate(tr).Len())
}
