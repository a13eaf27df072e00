/*
PURPOSE:
  Defines the Sink capability the facade writes to, and the inert
  NullSink installed until the host supplies a real one.

REQUIREMENTS:
  User-specified:
  - Logging before a sink is installed must always be safe.

  Implementation-discovered:
  - The facade never null-checks: absence of a sink is NullSink.

ARCHITECTURE INTEGRATION:
  - Implemented by: internal/output (slog, console, JSONL, CSV, fanout, recorder)
  - Consumed by: Logger in this package

ERROR HANDLING:
  - Sinks absorb their own failures; Log has no error return.

USAGE:
  stacklog.SetSink(output.NewConsoleSink(os.Stderr, model.LevelInfo))
*/

package stacklog

import "github.com/daryltucker/stacklog/internal/model"

// Sink receives formatted records from the facade.
type Sink interface {
	// Enabled reports whether records at level would be kept.
	Enabled(level model.Level) bool
	// Log emits one record.
	Log(rec model.Record)
}

// NullSink discards everything and reports every level as disabled.
type NullSink struct{}

func (NullSink) Enabled(model.Level) bool { return false }

func (NullSink) Log(model.Record) {}
