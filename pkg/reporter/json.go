package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/runner"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string      `json:"path"`
	Blocks     []JSONBlock `json:"blocks"`
	Modified   bool        `json:"modified,omitempty"`
	Pending    bool        `json:"pending,omitempty"`
	SkipReason string      `json:"skipReason,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// JSONBlock represents one highlighted block.
type JSONBlock struct {
	// Pos is the block position, or "document" for the whole document.
	Pos      string      `json:"pos"`
	Kind     string      `json:"kind"`
	Language string      `json:"language,omitempty"`
	Detected bool        `json:"detected,omitempty"`
	Start    int         `json:"start"`
	Text     string      `json:"text,omitempty"`
	Ranges   []JSONRange `json:"ranges"`
}

// JSONRange represents one decoration.
type JSONRange struct {
	From    int    `json:"from"`
	To      int    `json:"to"`
	Scope   string `json:"scope"`
	Classes string `json:"classes"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesProcessed int            `json:"filesProcessed"`
	FilesModified  int            `json:"filesModified"`
	FilesPending   int            `json:"filesPending"`
	FilesErrored   int            `json:"filesErrored"`
	Blocks         int            `json:"blocks"`
	Ranges         int            `json:"ranges"`
	Detected       int            `json:"detected"`
	Rendered       int            `json:"rendered"`
	Reused         int            `json:"reused"`
	ByLanguage     map[string]int `json:"byLanguage"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Ranges, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByLanguage: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   r.opts.displayPath(file.Path),
			Blocks: make([]JSONBlock, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if res := file.Result; res != nil {
			fileResult.Modified = res.Written
			fileResult.Pending = res.Modified && !res.Written && !res.Skipped
			if res.Skipped {
				fileResult.SkipReason = res.SkipReason
			}

			for _, block := range res.Blocks {
				jsonBlock := JSONBlock{
					Pos:      block.Pos.String(),
					Kind:     block.Kind,
					Language: block.Language,
					Detected: block.Detected,
					Start:    block.Start,
					Ranges:   make([]JSONRange, 0, len(block.Ranges)),
				}
				if r.opts.IncludeText {
					jsonBlock.Text = block.Text
				}
				for _, rng := range block.Ranges {
					jsonBlock.Ranges = append(jsonBlock.Ranges, JSONRange{
						From:    rng.From,
						To:      rng.To,
						Scope:   rng.Scope,
						Classes: rng.Classes,
					})
				}

				fileResult.Blocks = append(fileResult.Blocks, jsonBlock)
				output.Summary.Blocks++
				output.Summary.Ranges += len(block.Ranges)
				output.Summary.ByLanguage[block.Language]++
				if block.Detected {
					output.Summary.Detected++
				}
			}

			output.Summary.Rendered += res.Stats.Rendered
			output.Summary.Reused += res.Stats.Reused
			output.Summary.FilesProcessed++
		}

		if fileResult.Modified {
			output.Summary.FilesModified++
		}
		if fileResult.Pending {
			output.Summary.FilesPending++
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
