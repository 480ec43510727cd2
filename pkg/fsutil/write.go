package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files written without one.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic writes content to path through a temp file in the same
// directory followed by a rename. A mode of 0 means DefaultFileMode. On
// error the temp file is removed and path is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteIfUnchanged replaces the file described by info with content,
// keeping its mode. It returns ErrModified without writing when the file
// changed on disk since info was taken, and reports false when content
// equals what was read.
func WriteIfUnchanged(ctx context.Context, info *FileInfo, content []byte) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if Digest(content) == info.Digest && int64(len(content)) == info.Size {
		return false, nil
	}

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return false, err
	}
	if modified {
		return false, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return false, err
	}
	return true, nil
}
