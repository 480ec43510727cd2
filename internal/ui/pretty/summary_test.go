package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:   4,
		Blocks:           7,
		Ranges:           52,
		Detected:         2,
		BlocksByLanguage: map[string]int{"go": 5, "python": 2},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files processed:   4")
	assert.Contains(t, result, "Blocks:            7")
	assert.Contains(t, result, "Ranges:            52")
	assert.Contains(t, result, "Detected:          2")
	assert.Contains(t, result, "Highlighting complete")
	assert.NotContains(t, result, "Files updated:")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_LanguagesSorted(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:   1,
		Blocks:           4,
		BlocksByLanguage: map[string]int{"python": 1, "": 1, "go": 2},
	}

	result := styles.FormatSummary(stats)

	none := strings.Index(result, "(none)")
	goIdx := strings.Index(result, "go ")
	pyIdx := strings.Index(result, "python")
	assert.Positive(t, none)
	assert.Less(t, none, goIdx)
	assert.Less(t, goIdx, pyIdx)
}

func TestFormatSummary_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 2,
		FilesErrored:   1,
		FilesSkipped:   1,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Files skipped:     1")
	assert.Contains(t, result, "Highlighting failed for some files")
}

func TestFormatSummary_Pending(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 3,
		FilesPending:   2,
		Blocks:         2,
		Detected:       2,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files pending:     2")
	assert.Contains(t, result, "use --write")
}

func TestFormatSummary_WithModifiedFiles(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 3,
		FilesModified:  2,
		Blocks:         3,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files updated:     2")
	assert.Contains(t, result, "Highlighting complete")
}

func TestFormatSummaryOneLine_NoBlocks(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 5})

	assert.Equal(t, "No code blocks found (5 files checked)\n", result)
}

func TestFormatSummaryOneLine_NoBlocksSingleFile(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 1})

	assert.Equal(t, "No code blocks found (1 file checked)\n", result)
}

func TestFormatSummaryOneLine_WithBlocks(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 3,
		Blocks:         5,
		Detected:       2,
		Ranges:         41,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Equal(t, "5 blocks highlighted (2 detected) in 3 files, 41 ranges\n", result)
}

func TestFormatSummaryOneLine_Singular(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 1,
		Blocks:         1,
		Ranges:         1,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Equal(t, "1 block highlighted in 1 file, 1 range\n", result)
}

func TestFormatSummaryOneLine_WithWriteState(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 4,
		FilesModified:  1,
		FilesPending:   2,
		FilesErrored:   1,
		Blocks:         6,
		Ranges:         30,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 file updated")
	assert.Contains(t, result, "2 files pending write")
	assert.Contains(t, result, "1 failed")
}
