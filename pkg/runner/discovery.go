package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether slash-separated relative paths match any of a set
// of glob patterns. "*" stays within one path segment, "**" spans segments,
// and a leading "**/" also matches at the top level. Patterns without a
// slash are matched against the base name as well.
type Matcher struct {
	globs []glob.Glob
}

// CompileGlobs compiles patterns into a Matcher.
func CompileGlobs(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)

		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			if g, err := glob.Compile(rest, '/'); err == nil {
				m.globs = append(m.globs, g)
			}
		}
	}
	return m, nil
}

// Empty reports whether m has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.globs) == 0
}

// Match reports whether relPath, or its base name, matches. Directories are
// also tried with a trailing slash so "vendor/**" covers "vendor".
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if m.Empty() {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath, filepath.Base(relPath)}
	if isDir {
		candidates = append(candidates, relPath+"/")
	}
	for _, g := range m.globs {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}

// discoverer carries the compiled options of one Discover call.
type discoverer struct {
	workDir    string
	extensions []string
	include    *Matcher
	exclude    *Matcher
	follow     bool
}

// Discover finds Markdown files matching opts. It returns a deduplicated,
// sorted list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := CompileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk collects matching files below root. Hidden entries are skipped,
// except root itself.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && d.exclude.Match(d.rel(path), true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				// An explicitly named symlinked directory is always walked.
				if path != root && (!d.follow || d.exclude.Match(d.rel(path), true)) {
					return nil
				}
				// Walk the target; WalkDir does not descend into symlinks.
				sub, err := d.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (d *discoverer) matchesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	relPath := d.rel(path)
	if d.exclude.Match(relPath, false) {
		return false
	}
	return d.include.Empty() || d.include.Match(relPath, false)
}
