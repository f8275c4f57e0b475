package cli

import (
	"errors"

	"github.com/yaklabco/sarifapply/internal/configloader"
	"github.com/yaklabco/sarifapply/pkg/sarif"
)

// Exit codes for sarifapply. Values above 1 follow sysexits.h.
const (
	// ExitSuccess indicates the report was processed.
	ExitSuccess = 0

	// ExitFixesFailed indicates some fixes failed and --fail-on-error was set.
	ExitFixesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitMalformedReport indicates the report is not valid SARIF.
	ExitMalformedReport = 65

	// ExitReportNotFound indicates the report path does not exist.
	ExitReportNotFound = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates the report could not be read.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ErrPartialFailure is returned when fixes failed and the run was asked to
// report that through its exit status.
var ErrPartialFailure = errors.New("one or more fixes failed")

// ExitError carries an explicit exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, ErrPartialFailure) {
		return ExitFixesFailed
	}

	var inputErr *sarif.InputError
	if errors.As(err, &inputErr) {
		switch inputErr.Kind {
		case sarif.InputNotFound:
			return ExitReportNotFound
		case sarif.InputMalformed:
			return ExitMalformedReport
		default:
			return ExitIOError
		}
	}

	var valErr *configloader.ValidationError
	if errors.As(err, &valErr) {
		return ExitConfigError
	}

	return ExitInternalError
}

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}
