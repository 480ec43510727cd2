// Package reporter prints highlighted blocks in several output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/runner"
)

// Reporter formats and writes highlight results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of decoration ranges reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatANSI:
		return NewANSIReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
