package main

import "log/slog"

// LevelQuiet sits above slog.LevelError so verbosity 5 logs nothing the
// program emits.
const LevelQuiet = slog.Level(12)

// LogLevel maps a verbosity from 1 (most verbose) to 5 (quiet) to a slog level.
func LogLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 1:
		return slog.LevelDebug
	case verbosity == 2:
		return slog.LevelInfo
	case verbosity == 3:
		return slog.LevelWarn
	case verbosity == 4:
		return slog.LevelError
	default:
		return LevelQuiet
	}
}
