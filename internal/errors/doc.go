// Package errors provides error handling conventions for the workspace CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// packages import a single errors package, and defines an ExitError type
// for CLI exit code handling.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown client, strict-mode conflict, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, malformed client config)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [errors.Unwrap] and [errors.As]:
//
//	err := wserrors.NewUserError(cause, "Run: workspace mcp install --help")
//	os.Exit(wserrors.ExitCode(err))
package errors
