package logging

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdhl/pkg/highlight"
)

type loggerKey struct{}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFile tags every entry logged through ctx with the Markdown file being
// highlighted.
func WithFile(ctx context.Context, path string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(FieldPath, path))
}

// WithStep tags every entry logged through ctx with a replay step number.
func WithStep(ctx context.Context, step int) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(FieldStep, step))
}

// StatsFields returns the key/value pairs describing highlight cache work.
func StatsFields(stats highlight.Stats) []any {
	return []any{
		FieldReused, stats.Reused,
		FieldRendered, stats.Rendered,
		FieldEvicted, stats.Evicted,
		FieldDetected, stats.Detected,
	}
}
