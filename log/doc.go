// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("plan compiled", slog.String("notation", "2d20kH+4"))
//
// The zero [Logger] discards everything, so libraries may hold one without
// checking whether a caller supplied a real logger.
//
// Package-level functions ([Info], [Debug], ...) write to a default logger
// that [Config] reconfigures.
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and
// [LevelError]. Formats are [FormatJSON] (default) and [FormatText].
package log
