package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// ANSIReporter prints each block's code styled for a terminal.
type ANSIReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewANSIReporter creates a new terminal reporter.
func NewANSIReporter(opts Options) *ANSIReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &ANSIReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ANSIReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
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

		for _, block := range file.Result.Blocks {
			fmt.Fprintf(r.bw, "%s %s\n", r.styles.FilePath.Render(path), blockHeader(r.styles, block))
			code := r.styles.RenderCode(block.Text, 0, block.TextRanges())
			fmt.Fprint(r.bw, code)
			if !strings.HasSuffix(code, "\n") {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw)
			total += len(block.Ranges)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
