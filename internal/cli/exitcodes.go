package cli

import (
	"errors"

	"github.com/yaklabco/gomdhl/internal/configloader"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// Exit codes for gomdhl.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFilesFailed indicates some files could not be highlighted.
	ExitFilesFailed = 1

	// ExitPendingWrites indicates detected languages were not written
	// (with --check).
	ExitPendingWrites = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFilesFailed is returned when at least one file failed.
	ErrFilesFailed = errors.New("some files could not be highlighted")

	// ErrPendingWrites is returned by --check when detected languages are
	// not yet recorded in the sources.
	ErrPendingWrites = errors.New("detected languages not written")

	// ErrConfig marks configuration failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a highlight run.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitFilesFailed
	}
	if check && result.HasPending() {
		return ExitPendingWrites
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, ErrPendingWrites):
		return ExitPendingWrites
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, runner.ErrFileNotFound), errors.Is(err, runner.ErrPermissionDenied),
		errors.Is(err, runner.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit status and needs no
// logging.
func IsSignal(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrPendingWrites)
}
