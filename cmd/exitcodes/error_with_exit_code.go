package exitcodes

// ErrorWithExitCode is an `error` type that pairs an optional underlying error with the process exit code it should
// map to when it bubbles up to the top-level command handler. The underlying error may be nil for outcomes which
// carry meaning purely through their exit code, such as a found crash.
type ErrorWithExitCode struct {
	err      error
	exitCode int
}

// NewErrorWithExitCode creates a new error (ErrorWithExitCode) with the provided internal error and exit code.
func NewErrorWithExitCode(err error, exitCode int) *ErrorWithExitCode {
	return &ErrorWithExitCode{
		err:      err,
		exitCode: exitCode,
	}
}

// Error returns the error message string, implementing the `error` interface.
func (e *ErrorWithExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Unwrap returns the underlying error, if any, so callers can inspect it with the standard errors helpers.
func (e *ErrorWithExitCode) Unwrap() error {
	return e.err
}

// ExitCode returns the process exit code this error maps to.
func (e *ErrorWithExitCode) ExitCode() int {
	return e.exitCode
}

// GetInnerErrorAndExitCode resolves the exit code the application should exit with for a given error: 0 for a nil
// error, 1 for a generic error, or the wrapped code for an ErrorWithExitCode. Returns the error (or the inner error
// for an ErrorWithExitCode), along with the resolved exit code.
func GetInnerErrorAndExitCode(err error) (error, int) {
	if err == nil {
		return nil, ExitCodeSuccess
	}
	if unwrappedErr, ok := err.(*ErrorWithExitCode); ok {
		return unwrappedErr.err, unwrappedErr.exitCode
	}
	return err, ExitCodeGeneralError
}
