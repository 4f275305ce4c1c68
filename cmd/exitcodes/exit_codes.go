package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeFuzzerError indicates that there was an error during the execution of a fuzzer. Note that an error with
	// error code ExitCodeGeneralError and ExitCodeFuzzerError are mutually exclusive errors
	ExitCodeFuzzerError = 6

	// ExitCodeCrashFound indicates the fuzzing campaign found a crashing input. This is the campaign's success
	// condition, surfaced as a distinct code so scripts can tell it apart from a clean, crash-free run.
	ExitCodeCrashFound = 7

	// ExitCodeHandledError indicates that the error was already logged by the command, so the top-level handler
	// should exit without printing it again.
	ExitCodeHandledError = 405
)
