// Package logging provides structured logging for the workspace CLI using slog.
//
// Text output goes through [Handler], which colorizes levels and keys when
// writing to a terminal. JSON output uses the standard [slog.JSONHandler].
// Both mask attribute values whose key or content looks like a credential,
// since server environment maps are logged during registration.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbose),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// For tests, use [ForTest] so output only appears on failure or with -v.
package logging
