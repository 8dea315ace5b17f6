package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/porytext/internal/configloader"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fsutil"
	"github.com/yaklabco/porytext/pkg/lint"
	"github.com/yaklabco/porytext/pkg/runner"
)

// Exit codes for porytext.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates lines overflowed, or warnings were found in
	// strict mode.
	ExitIssues = 1

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
	// ErrIssuesFound is returned when a run found issues. It only drives
	// the exit code and is not logged.
	ErrIssuesFound = errors.New("issues found")

	// ErrInvalidUsage marks bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded.
	ErrConfig = errors.New("configuration error")

	// ErrFilesFailed is returned when one or more files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitIssues
	case strict && result.Stats.Count(config.SeverityWarning) > 0:
		return ExitIssues
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, lint.ErrInvalidLineRange):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, lint.ErrFileNotFound),
		errors.Is(err, lint.ErrPermissionDenied),
		errors.Is(err, lint.ErrWriteFailure),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, os.ErrNotExist):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
