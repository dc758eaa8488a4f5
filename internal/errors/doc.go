// Package errors provides error handling conventions for the loomtasks CLI.
//
// This package defines sentinel errors for the failure conditions of SDK
// resolution and version synchronization, an ExitError type for CLI exit
// code handling, and exit code constants following standard Unix
// conventions. Wrapping helpers are re-exported from
// github.com/cockroachdb/errors so callers only import one errors package.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrVersionNotFound) {
//	    // the source file has no version declaration
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, failed tool, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [Unwrap] and [As]:
//
//	err := errors.NewUserError(errors.ErrNoSDKVersion, "Pass --sdk or run: loomtasks sdk use")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
