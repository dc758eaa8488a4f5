// Package logging provides structured logging for loomtasks using slog.
//
// Loggers write either a colorized, TTY-friendly text format or JSON.
// Verbosity flags map onto levels with [LevelFromVerbosity], including a
// [LevelTrace] below Debug for echoing every probe and substitution.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("resolved sdk", "version", "sprint34")
//
// For tests, [ForTest] routes output through t.Log.
package logging
