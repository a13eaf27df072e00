/*
PURPOSE:
  Provides the tool's own structured logger and the level mapping shared
  by the slog-backed sinks.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.

  Implementation-discovered:
  - LIFECYCLE and QUIET have no slog equivalent; they sit between the
    standard slog levels so ordering-based filters still work.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, the sinks in this package.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

RELATED FILES:
  - internal/output/slog_sink.go

MAINTENANCE:
  - Keep SlogLevel in step with model.Levels().
*/

package output

import (
	"log/slog"
	"os"

	"github.com/daryltucker/stacklog/internal/model"
)

var Logger *slog.Logger

func init() {
	// Diagnostics go to stderr so record output on stdout stays clean.
	Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// SlogLevel maps a facade level onto the slog scale.
func SlogLevel(level model.Level) slog.Level {
	switch level {
	case model.LevelDebug:
		return slog.LevelDebug
	case model.LevelInfo:
		return slog.LevelInfo
	case model.LevelLifecycle:
		return slog.LevelInfo + 2
	case model.LevelWarn:
		return slog.LevelWarn
	case model.LevelQuiet:
		return slog.LevelWarn + 2
	case model.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
