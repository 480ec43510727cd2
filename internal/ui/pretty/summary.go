package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdhl/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
	noLanguage          = "(none)"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 blocks highlighted (2 detected) in 3 files, 41 ranges".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Blocks == 0 {
		return s.Dim.Render(fmt.Sprintf("No code blocks found (%d %s checked)",
			stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) + "\n"
	}

	main := fmt.Sprintf("%d %s highlighted", stats.Blocks, plural(stats.Blocks, "block", "blocks"))
	if stats.Detected > 0 {
		main += " (" + s.Language.Render(fmt.Sprintf("%d detected", stats.Detected)) + ")"
	}
	main += fmt.Sprintf(" in %d %s", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))

	parts := []string{main, fmt.Sprintf("%d %s", stats.Ranges, plural(stats.Ranges, "range", "ranges"))}

	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s updated",
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesPending > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s pending write",
			stats.FilesPending, plural(stats.FilesPending, wordFile, wordFiles))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesModified > 0 {
		builder.WriteString("  Files updated:     " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}
	if stats.FilesPending > 0 {
		builder.WriteString("  Files pending:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesPending)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	// Blocks
	builder.WriteString("  Blocks:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Blocks)) + "\n")
	builder.WriteString("  Ranges:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Ranges)) + "\n")
	if stats.Detected > 0 {
		builder.WriteString("  Detected:          " +
			s.Detected.Render(strconv.Itoa(stats.Detected)) + "\n")
	}

	langs := make([]string, 0, len(stats.BlocksByLanguage))
	for lang := range stats.BlocksByLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		name := lang
		if name == "" {
			name = noLanguage
		}
		builder.WriteString(fmt.Sprintf("    %-15s  %s\n",
			s.Language.Render(name), s.SummaryValue.Render(strconv.Itoa(stats.BlocksByLanguage[lang]))))
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Highlighting failed for some files"))
	case stats.FilesPending > 0:
		builder.WriteString(s.Warning.Render("Detected languages not written (use --write)"))
	default:
		builder.WriteString(s.Success.Render("Highlighting complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
