// Package config defines core configuration types for gomdhl.
// These types are pure data structures; loading and merging live in the
// configloader package.
package config

import (
	"slices"
	"time"
)

// OutputFormat specifies how highlighted files are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatHTML OutputFormat = "html"
	FormatANSI OutputFormat = "ansi"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatHTML, FormatANSI:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultClassPrefix is prepended to scope names to form CSS classes.
const DefaultClassPrefix = "hljs-"

// DefaultMemoTTL bounds how long memoized highlighter results are kept.
const DefaultMemoTTL = 10 * time.Minute

// MemoConfig controls memoization of highlighter results across files.
type MemoConfig struct {
	// Enabled turns memoization on. Nil means the default (on).
	Enabled *bool `yaml:"enabled,omitempty"`

	// TTL is how long a result stays memoized. Zero means DefaultMemoTTL.
	TTL time.Duration `yaml:"ttl,omitempty"`
}

// Config is the root configuration structure for gomdhl.
type Config struct {
	// NodeTypes lists the node kinds to highlight, e.g. "code_block".
	NodeTypes []string `yaml:"node_types"`

	// ClassPrefix is prepended to scope names in class lists.
	ClassPrefix string `yaml:"class_prefix"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// PersistDetected records detected languages in the source files when
	// writing. Nil means false.
	PersistDetected *bool `yaml:"persist_detected,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Memo configures result memoization.
	Memo MemoConfig `yaml:"memo"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Write enables writing persisted languages back to files.
	Write bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		NodeTypes:   []string{"code_block"},
		ClassPrefix: DefaultClassPrefix,
		Flavor:      FlavorCommonMark,
		Memo:        MemoConfig{TTL: DefaultMemoTTL},
		Format:      FormatText,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// ShouldPersist reports whether detected languages are written to files.
func (c *Config) ShouldPersist() bool {
	return c.PersistDetected != nil && *c.PersistDetected
}

// MemoEnabled reports whether highlighter results are memoized.
func (c *Config) MemoEnabled() bool {
	return c.Memo.Enabled == nil || *c.Memo.Enabled
}

// MemoTTL returns the memoization TTL, applying the default.
func (c *Config) MemoTTL() time.Duration {
	if c.Memo.TTL <= 0 {
		return DefaultMemoTTL
	}
	return c.Memo.TTL
}

// HighlightsNodeType reports whether kind is listed in NodeTypes.
func (c *Config) HighlightsNodeType(kind string) bool {
	return slices.Contains(c.NodeTypes, kind)
}
