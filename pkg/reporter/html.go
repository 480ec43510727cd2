package reporter

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// HTMLReporter writes each block as a <pre><code> fragment with one
// <span> per decoration.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
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
		if file.Error != nil {
			fmt.Fprintf(r.bw, "<!-- %s: %s -->\n",
				html.EscapeString(r.opts.displayPath(file.Path)), html.EscapeString(file.Error.Error()))
			continue
		}
		if file.Result == nil || len(file.Result.Blocks) == 0 {
			continue
		}

		fmt.Fprintf(r.bw, "<section data-path=\"%s\">\n", html.EscapeString(r.opts.displayPath(file.Path)))
		for _, block := range file.Result.Blocks {
			fmt.Fprintf(r.bw, "<pre data-pos=\"%s\"><code%s>%s</code></pre>\n",
				block.Pos.String(), languageClass(block.Language),
				RenderHTML(block.Text, 0, block.TextRanges()))
			total += len(block.Ranges)
		}
		fmt.Fprintln(r.bw, "</section>")
	}

	return total, nil
}

func languageClass(language string) string {
	if language == "" {
		return ""
	}
	return ` class="language-` + html.EscapeString(language) + `"`
}

// RenderHTML escapes text and wraps each decoration in a
// <span class="..."> element. start is the document position of text[0].
// Ranges must nest; a range crossing its enclosing range is cut at the
// enclosing range's end. Ranges without classes produce no element.
func RenderHTML(text string, start int, ranges []highlight.Range) string {
	sorted := make([]highlight.Range, 0, len(ranges))
	for _, rng := range ranges {
		if rng.Classes != "" {
			sorted = append(sorted, rng)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To > sorted[j].To
	})

	var sb strings.Builder
	var ends []int
	pos := 0
	closeUntil := func(limit int) {
		for len(ends) > 0 && ends[len(ends)-1] <= limit {
			end := ends[len(ends)-1]
			sb.WriteString(html.EscapeString(text[pos:end]))
			sb.WriteString("</span>")
			pos = end
			ends = ends[:len(ends)-1]
		}
	}

	for _, rng := range sorted {
		from := min(max(rng.From-start, 0), len(text))
		to := min(max(rng.To-start, 0), len(text))
		if from >= to {
			continue
		}
		closeUntil(from)
		if len(ends) > 0 {
			to = min(to, ends[len(ends)-1])
		}
		sb.WriteString(html.EscapeString(text[pos:from]))
		pos = from
		sb.WriteString(`<span class="`)
		sb.WriteString(html.EscapeString(rng.Classes))
		sb.WriteString(`">`)
		ends = append(ends, to)
	}
	closeUntil(len(text))
	sb.WriteString(html.EscapeString(text[pos:]))

	return sb.String()
}
