package runner

// FileOutcome pairs a processed path with its result or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be processed.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesSkipped is the number of files whose write was abandoned.
	FilesSkipped int

	// FilesModified is the number of files written back.
	FilesModified int

	// FilesPending is the number of files with unwritten language edits.
	FilesPending int

	// Blocks is the number of highlighted blocks.
	Blocks int

	// Ranges is the number of decorations across all files.
	Ranges int

	// Detected is the number of blocks with a detected language.
	Detected int

	// BlocksByLanguage counts blocks per language; "" counts blocks
	// highlighted without one.
	BlocksByLanguage map[string]int

	// Rendered counts blocks that went through the highlighter.
	Rendered int

	// Reused counts blocks served from a plugin cache.
	Reused int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasPending reports whether language edits were computed but not written.
func (r *Result) HasPending() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesPending > 0
}

func newStats() Stats {
	return Stats{
		BlocksByLanguage: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	fr := outcome.Result
	r.Stats.FilesProcessed++

	switch {
	case fr.Skipped:
		r.Stats.FilesSkipped++
	case fr.Written:
		r.Stats.FilesModified++
	case fr.Modified:
		r.Stats.FilesPending++
	}

	r.Stats.Blocks += len(fr.Blocks)
	r.Stats.Ranges += fr.RangeCount()
	r.Stats.Detected += fr.DetectedCount()
	r.Stats.Rendered += fr.Stats.Rendered
	r.Stats.Reused += fr.Stats.Reused
	for _, b := range fr.Blocks {
		r.Stats.BlocksByLanguage[b.Language]++
	}
}
