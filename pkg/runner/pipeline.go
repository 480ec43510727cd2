package runner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/editor"
	"github.com/yaklabco/gomdhl/pkg/fsutil"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/parser/goldmark"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrHighlightFailure indicates the document could not be highlighted.
	ErrHighlightFailure = errors.New("highlight failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// BlockResult describes one highlighted block.
type BlockResult struct {
	// Pos is the block position in the document.
	Pos highlight.BlockPos

	// Kind is the block's node type, e.g. "code_block".
	Kind string

	// Language is the language the block was highlighted as. Empty when
	// the language was unknown or could not be detected.
	Language string

	// Detected is true when Language was found by autodetection.
	Detected bool

	// Text is the block's text content.
	Text string

	// Start is the document position of Text's first byte. For the whole
	// document, later text is separated from it by node boundaries; use
	// TextRanges to address Text.
	Start int

	// Ranges are the decorations inside the block, sorted.
	Ranges []highlight.Range

	// textMap is set for the whole document, whose text is not contiguous
	// in document positions.
	textMap *highlight.TextMap
}

// TextRanges returns Ranges as offsets into Text.
func (b BlockResult) TextRanges() []highlight.Range {
	if b.textMap != nil {
		return b.textMap.Offsets(b.Ranges)
	}
	out := make([]highlight.Range, len(b.Ranges))
	for i, r := range b.Ranges {
		r.From -= b.Start
		r.To -= b.Start
		out[i] = r
	}
	return out
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing. Nil for
	// in-memory content.
	OriginalInfo *fsutil.FileInfo

	// Blocks are the highlighted blocks in document order.
	Blocks []BlockResult

	// Stats sums the cache work of the initial pass and its follow-ups.
	Stats highlight.Stats

	// FollowUps counts transactions the plugin dispatched.
	FollowUps int

	// Edits record detected languages in the source. Only set when
	// persisting.
	Edits []transform.Edit

	// Modified is true if persisting changed the content.
	Modified bool

	// ModifiedContent is the content after Edits (nil if not modified).
	ModifiedContent []byte

	// Written is true if ModifiedContent was written to disk.
	Written bool

	// Skipped is true if the write was abandoned.
	Skipped bool

	// SkipReason explains why the write was skipped.
	SkipReason string
}

// RangeCount returns the number of ranges over all blocks.
func (r *FileResult) RangeCount() int {
	n := 0
	for _, b := range r.Blocks {
		n += len(b.Ranges)
	}
	return n
}

// DetectedCount returns the number of blocks with a detected language.
func (r *FileResult) DetectedCount() int {
	n := 0
	for _, b := range r.Blocks {
		if b.Detected {
			n++
		}
	}
	return n
}

// PipelineOptions controls per-file behavior.
type PipelineOptions struct {
	// Persist computes edits recording detected languages in the source.
	Persist bool

	// Write writes persisted edits to disk. Ignored without Persist.
	Write bool
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{}
	}
	return PipelineOptions{
		Persist: cfg.ShouldPersist(),
		Write:   cfg.Write,
	}
}

// Pipeline highlights a single file.
type Pipeline struct {
	// Parser turns sources into documents.
	Parser *goldmark.Parser

	// Highlighter tokenizes block text.
	Highlighter highlight.Highlighter

	// NodeTypes lists the node kinds to highlight.
	NodeTypes []string
}

// NewPipeline creates a pipeline for cfg. A nil cfg uses defaults.
func NewPipeline(cfg *config.Config, hl highlight.Highlighter) *Pipeline {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Pipeline{
		Parser:      goldmark.New(string(cfg.Flavor)),
		Highlighter: hl,
		NodeTypes:   cfg.NodeTypes,
	}
}

// NewHighlighter builds the highlighter cfg describes: a chroma engine using
// the configured class prefix, memoized across files unless memoization is
// disabled. The returned memo is nil when disabled.
func NewHighlighter(cfg *config.Config) (highlight.Highlighter, *highlighter.Memo) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	engine := highlighter.New(highlighter.WithClassPrefix(cfg.ClassPrefix))
	if !cfg.MemoEnabled() {
		return engine, nil
	}
	memo := highlighter.NewMemo(engine, cfg.MemoTTL())
	return memo, memo
}

// ProcessFile reads, highlights and optionally rewrites path.
//
// The pipeline performs the following steps:
//  1. Read and digest the file.
//  2. Parse it and let an editor host run the highlight plugin, applying
//     the detected-language follow-ups.
//  3. Collect per-block decorations.
//  4. If persisting, compute source edits for detected languages.
//  5. If writing, replace the file unless it changed on disk meanwhile.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !opts.Write || !result.Modified {
		return result, nil
	}

	written, err := fsutil.WriteIfUnchanged(ctx, info, result.ModifiedContent)
	switch {
	case errors.Is(err, fsutil.ErrModified):
		result.Skipped = true
		result.SkipReason = "file modified during processing"
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	default:
		result.Written = written
	}
	return result, nil
}

// ProcessContent highlights in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*FileResult, error) {
	doc, err := p.Parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ed, applied, err := editor.New(doc, p.Highlighter, highlight.PluginConfig{NodeTypes: p.NodeTypes})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHighlightFailure, path, err)
	}

	result := &FileResult{Path: path, Stats: ed.InitStats()}
	for _, a := range applied {
		result.Stats = result.Stats.Add(a.Stats)
		if a.FollowUp {
			result.FollowUps++
		}
	}
	result.Blocks = p.collectBlocks(ed.Doc(), ed.Decorations())

	if !opts.Persist {
		return result, nil
	}

	edits, err := transform.PrepareEdits(LanguageEdits(ed.Doc()), len(content))
	if err != nil {
		return nil, fmt.Errorf("persist languages in %s: %w", path, err)
	}
	if len(edits) > 0 {
		result.Edits = edits
		result.Modified = true
		result.ModifiedContent = transform.ApplyEdits(content, edits)
	}
	return result, nil
}

// collectBlocks pairs each located block with the decorations inside it.
func (p *Pipeline) collectBlocks(doc *mdast.Node, decorations highlight.DecorationSet) []BlockResult {
	located := highlight.Locate(doc, p.NodeTypes)
	blocks := make([]BlockResult, 0, len(located))
	for _, b := range located {
		text := b.Node.TextContent()
		var (
			start, end int
			textMap    *highlight.TextMap
		)
		if offset, ok := b.Pos.Offset(); ok {
			start = offset + 1
			end = start + len(text)
		} else {
			textMap = highlight.NewTextMap(doc, 0)
			start = textMap.Pos(0, false)
			end = doc.ContentSize()
		}

		var ranges []highlight.Range
		for _, r := range decorations.Find(start, end) {
			if r.From >= start && r.To <= end {
				ranges = append(ranges, r)
			}
		}

		language := highlight.DefaultLanguage(b.Node)
		if !p.Highlighter.Known(language) {
			language = ""
		}
		var detected bool
		if attrs := b.Node.Block; attrs != nil && attrs.CodeBlock != nil {
			detected = attrs.CodeBlock.Params() == "" && attrs.CodeBlock.Language != ""
		}

		blocks = append(blocks, BlockResult{
			Pos:      b.Pos,
			Kind:     b.Node.Kind.String(),
			Language: language,
			Detected: detected,
			Text:     text,
			Start:    start,
			Ranges:   ranges,
			textMap:  textMap,
		})
	}
	return blocks
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrHighlightFailure) ||
		errors.Is(err, ErrWriteFailure)
}
