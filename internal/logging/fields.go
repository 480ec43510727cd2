// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFlavor      = "flavor"
	FieldFormat      = "format"
	FieldJobs        = "jobs"
	FieldNodeTypes   = "node_types"
	FieldClassPrefix = "class_prefix"
	FieldWrite       = "write"
	FieldConfigFiles = "config_files"

	// Block fields.
	FieldPos      = "pos"
	FieldLanguage = "language"
	FieldRanges   = "ranges"
	FieldBlocks   = "blocks"

	// Cache statistics fields.
	FieldReused   = "reused"
	FieldRendered = "rendered"
	FieldEvicted  = "evicted"
	FieldDetected = "detected"
	FieldMemoHits = "memo_hits"

	// Run statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldFilesFailed     = "files_failed"

	// Replay fields.
	FieldStep      = "step"
	FieldSteps     = "steps"
	FieldFollowUps = "follow_ups"
	FieldHistory   = "history"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
