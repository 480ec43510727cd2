package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "memo.ttl").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// highlightableKinds are the node kinds that can hold code text.
//
//nolint:gochecknoglobals // Read-only lookup table.
var highlightableKinds = map[mdast.NodeKind]bool{
	mdast.NodeCodeBlock: true,
	mdast.NodeParagraph: true,
	mdast.NodeHeading:   true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateNodeTypes(cfg, result)

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, html, ansi", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Memo.TTL < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "memo.ttl",
			Value:   cfg.Memo.TTL,
			Message: "memo ttl must be >= 0 (0 means default)",
		})
	}

	if strings.ContainsAny(cfg.ClassPrefix, " \t\n") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "class_prefix",
			Value:   cfg.ClassPrefix,
			Message: "class prefix must not contain whitespace",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateNodeTypes checks that every node type names a known kind. Kinds
// that can never hold code are accepted with a warning.
func validateNodeTypes(cfg *config.Config, result *ValidationResult) {
	for i, name := range cfg.NodeTypes {
		field := fmt.Sprintf("node_types[%d]", i)
		kind, ok := mdast.ParseNodeKind(name)
		if !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown node type %q", name),
			})
			continue
		}
		if !highlightableKinds[kind] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("node type %q holds no code text; it will never be highlighted", name),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile the same way
// discovery compiles them.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		_, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}
