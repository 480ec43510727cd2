// Package runner highlights many Markdown files concurrently: it discovers
// files, runs each through a Pipeline on a worker pool and aggregates the
// outcomes in path order.
package runner

import "github.com/yaklabco/gomdhl/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match globs against. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching files when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. Config ignore
	// patterns end up here.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
