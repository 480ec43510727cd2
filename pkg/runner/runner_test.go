package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

func writeDocs(t *testing.T, dir string, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocs(t, dir, map[string]string{
		"a.md":      fencedGo,
		"b.md":      bareGo,
		"c/d.md":    "no code here\n",
		"c/e.md":    "```python\nprint('x')\n```\n",
		"skip.txt":  fencedGo,
		"z/late.md": fencedGo,
	})

	cfg := config.NewConfig()
	hl, memo := runner.NewHighlighter(cfg)
	r := runner.New(runner.NewPipeline(cfg, hl))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1, Config: cfg})
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		require.NoError(t, f.Error)
		rel, err := filepath.Rel(dir, f.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a.md", "b.md", "c/d.md", "c/e.md", "z/late.md"}, paths)

	stats := result.Stats
	assert.Equal(t, 5, stats.FilesDiscovered)
	assert.Equal(t, 5, stats.FilesProcessed)
	assert.Equal(t, 4, stats.Blocks)
	assert.Equal(t, 1, stats.Detected)
	assert.Equal(t, 3, stats.BlocksByLanguage["go"])
	assert.Equal(t, 1, stats.BlocksByLanguage["python"])
	assert.Zero(t, stats.FilesPending)
	assert.False(t, result.HasFailures())

	// a.md and z/late.md hold the same block; with one worker the second is
	// always a memo hit.
	require.NotNil(t, memo)
	assert.GreaterOrEqual(t, memo.Stats().Hits, int64(1))
}

func TestRunner_PersistAndWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocs(t, dir, map[string]string{"b.md": bareGo, "a.md": fencedGo})

	cfg := config.NewConfig()
	cfg.PersistDetected = config.Bool(true)

	hl, _ := runner.NewHighlighter(cfg)
	r := runner.New(runner.NewPipeline(cfg, hl))

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesPending)
	assert.True(t, result.HasPending())

	cfg.Write = true
	result, err = r.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Zero(t, result.Stats.FilesPending)

	got, err := os.ReadFile(filepath.Join(dir, "b.md"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "```go\n")

	// The language is now explicit, so a third run has nothing to persist.
	result, err = r.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Zero(t, result.Stats.FilesModified)
	assert.Zero(t, result.Stats.Detected)
}

func TestRunner_NoFiles(t *testing.T) {
	t.Parallel()

	hl, _ := runner.NewHighlighter(nil)
	result, err := runner.New(runner.NewPipeline(nil, hl)).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocs(t, dir, map[string]string{"a.md": fencedGo})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hl, _ := runner.NewHighlighter(nil)
	_, err := runner.New(runner.NewPipeline(nil, hl)).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}
