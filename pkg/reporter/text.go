package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// maxSnippet is the longest range text quoted by the text format.
const maxSnippet = 40

// TextReporter lists every decoration range, grouped by file and block.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to highlight."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || len(file.Result.Blocks) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FilePath.Render(path))
		for _, block := range file.Result.Blocks {
			fmt.Fprintf(r.bw, "  %s\n", blockHeader(r.styles, block))
			local := block.TextRanges()
			for i, rng := range block.Ranges {
				fmt.Fprintf(r.bw, "    %s  %s  %s  %s\n",
					r.styles.Location.Render(fmt.Sprintf("%d-%d", rng.From, rng.To)),
					rng.Scope,
					r.styles.Classes.Render(rng.Classes),
					r.styles.Dim.Render(snippet(block.Text, local[i])),
				)
				total++
			}
		}
		if file.Result.Skipped {
			fmt.Fprintf(r.bw, "  %s\n", r.styles.Warning.Render("skipped: "+file.Result.SkipReason))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// blockHeader describes a block as "block 7 go (detected)".
func blockHeader(styles *pretty.Styles, block runner.BlockResult) string {
	header := styles.Location.Render("block " + block.Pos.String())
	switch {
	case block.Language == "":
		header += " " + styles.Dim.Render("plain")
	case block.Detected:
		header += " " + styles.Detected.Render(block.Language+" (detected)")
	default:
		header += " " + styles.Language.Render(block.Language)
	}
	return header
}

// snippet returns the quoted text covered by rng, an offset range into text.
func snippet(text string, rng highlight.Range) string {
	from, to := rng.From, rng.To
	if from < 0 || to > len(text) || from > to {
		return ""
	}
	text = text[from:to]
	if len(text) > maxSnippet {
		text = text[:maxSnippet] + "..."
	}
	return strconv.Quote(text)
}
