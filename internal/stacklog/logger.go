/*
PURPOSE:
  The logging facade. Every record flows through a Logger, which derives
  the tag from the call stack when none is given, shapes the message,
  splits oversized messages into segments and forwards them to the
  installed Sink.

REQUIREMENTS:
  User-specified:
  - Six levels, each with an auto-tag and an explicit-tag entry point.
  - WARN and ERROR accept an error alone or alongside a message.
  - Messages longer than SegmentSize are emitted as several records.
  - Safe to call before any sink is installed.

  Implementation-discovered:
  - SetSink may race with emission; the sink lives behind an atomic
    pointer so a call sees either the old or the new sink.
  - A package default Logger keeps call sites short; explicit Loggers
    can be built with New and passed around.

ARCHITECTURE INTEGRATION:
  - Called by: any package that logs (internal/engine, internal/cli)
  - Writes to: a Sink from internal/output, or NullSink

ERROR HANDLING:
  - Nothing is returned or raised. Empty messages are no-ops, unknown
    levels are never loggable.

IMPLEMENTATION RULES:
  - All named entry points go through Emit so the shaping rules live in
    one place.
  - Stack inspection happens at the call boundary, never cached.

USAGE:
  stacklog.SetSink(sink)
  stacklog.Warn("slow path")
  stacklog.ErrorTagErr("net", "fetch failed", err)

RELATED FILES:
  - internal/stacklog/caller.go
  - internal/stacklog/trace.go

MAINTENANCE:
  - New shaping rules belong in Logger.shape.
*/

package stacklog

import (
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/daryltucker/stacklog/internal/model"
)

// SegmentSize is the largest number of characters emitted in one record.
const SegmentSize = 1024 * 3

// Logger is a logging facade bound to a replaceable Sink. The zero value
// logs to NullSink.
type Logger struct {
	sink atomic.Pointer[sinkRef]
}

type sinkRef struct {
	Sink
}

// New returns a Logger writing to sink. A nil sink means NullSink.
func New(sink Sink) *Logger {
	l := &Logger{}
	l.SetSink(sink)
	return l
}

// SetSink replaces the sink for all subsequent calls.
func (l *Logger) SetSink(sink Sink) {
	if sink == nil {
		sink = NullSink{}
	}
	l.sink.Store(&sinkRef{sink})
}

// Sink returns the sink currently installed.
func (l *Logger) Sink() Sink {
	if ref := l.sink.Load(); ref != nil {
		return ref.Sink
	}
	return NullSink{}
}

// IsLoggable reports whether the installed sink keeps records at level.
func (l *Logger) IsLoggable(level model.Level) bool {
	if !level.Valid() {
		return false
	}
	return l.Sink().Enabled(level)
}

// Option adjusts a single Emit call.
type Option func(*emitOptions)

type emitOptions struct {
	tag    string
	hasTag bool
	err    error
	hasErr bool
}

// WithTag sets the tag explicitly instead of deriving it from the caller.
func WithTag(tag string) Option {
	return func(o *emitOptions) {
		o.tag = tag
		o.hasTag = true
	}
}

// WithError attaches err, rendered with StackTraceString.
func WithError(err error) Option {
	return func(o *emitOptions) {
		o.err = err
		o.hasErr = true
	}
}

// Emit shapes msg for level and logs it. It returns the number of
// characters handed to the sink.
//
// Shaping:
//   - an error with no message logs the rendered trace only;
//   - a message with a non-nil error logs "<msg>, <trace>";
//   - WARN and ERROR messages without an error are prefixed with the
//     call site, "<Type.method(file:line)>, <msg>";
//   - other levels log the message unchanged.
func (l *Logger) Emit(level model.Level, msg string, opts ...Option) int {
	var o emitOptions
	for _, opt := range opts {
		opt(&o)
	}
	tag := o.tag
	if !o.hasTag {
		tag = CallerTag()
	}
	return l.Log(tag, l.shape(level, msg, o), level)
}

func (l *Logger) shape(level model.Level, msg string, o emitOptions) string {
	switch {
	case o.hasErr && msg == "":
		return StackTraceString(o.err)
	case o.err != nil:
		return msg + ", " + StackTraceString(o.err)
	case level == model.LevelWarn || level == model.LevelError:
		return CallerInfo() + ", " + msg
	default:
		return msg
	}
}

// Log emits msg under tag at level, split into SegmentSize pieces when
// it is longer than that. An empty message emits nothing and returns 0.
// The result is the total length of the formatted lines sent.
func (l *Logger) Log(tag, msg string, level model.Level) int {
	if msg == "" {
		return 0
	}
	if utf8.RuneCountInString(msg) <= SegmentSize {
		return l.write(tag, msg, level)
	}

	total := 0
	for len(msg) > 0 {
		cut := segmentEnd(msg, SegmentSize)
		total += l.write(tag, msg[:cut], level)
		msg = msg[cut:]
	}
	return total
}

// segmentEnd returns the byte offset just past the first n runes of s.
func segmentEnd(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

func (l *Logger) write(tag, text string, level model.Level) int {
	rec := model.Record{Tag: tag, Level: level, Text: text, Time: time.Now()}
	l.Sink().Log(rec)
	return utf8.RuneCountInString(rec.Line())
}

// PrintStackTrace logs the caller's stack, at most depth frames, as one
// LIFECYCLE record.
func (l *Logger) PrintStackTrace(depth int) {
	if depth <= 0 {
		return
	}
	label, block := stackBlock(depth)
	l.Log(label, block, model.LevelLifecycle)
}

// PrintStackTraceDefault logs DefaultTraceDepth frames of the caller's stack.
func (l *Logger) PrintStackTraceDefault() {
	l.PrintStackTrace(DefaultTraceDepth)
}

// PrintAllStackTrace logs the caller's whole stack as one LIFECYCLE record.
func (l *Logger) PrintAllStackTrace() {
	label, block := stackBlock(0)
	l.Log(label, block, model.LevelLifecycle)
}

func (l *Logger) Debug(msg string) { l.Emit(model.LevelDebug, msg) }

func (l *Logger) DebugTag(tag, msg string) { l.Emit(model.LevelDebug, msg, WithTag(tag)) }

func (l *Logger) Info(msg string) { l.Emit(model.LevelInfo, msg) }

func (l *Logger) InfoTag(tag, msg string) { l.Emit(model.LevelInfo, msg, WithTag(tag)) }

func (l *Logger) Lifecycle(msg string) { l.Emit(model.LevelLifecycle, msg) }

func (l *Logger) LifecycleTag(tag, msg string) { l.Emit(model.LevelLifecycle, msg, WithTag(tag)) }

func (l *Logger) Quiet(msg string) { l.Emit(model.LevelQuiet, msg) }

func (l *Logger) QuietTag(tag, msg string) { l.Emit(model.LevelQuiet, msg, WithTag(tag)) }

func (l *Logger) Warn(msg string) { l.Emit(model.LevelWarn, msg) }

func (l *Logger) WarnTag(tag, msg string) { l.Emit(model.LevelWarn, msg, WithTag(tag)) }

func (l *Logger) WarnErr(err error) { l.Emit(model.LevelWarn, "", WithError(err)) }

func (l *Logger) WarnMsgErr(msg string, err error) {
	l.Emit(model.LevelWarn, msg, WithError(err))
}

func (l *Logger) WarnTagErr(tag, msg string, err error) {
	l.Emit(model.LevelWarn, msg, WithTag(tag), WithError(err))
}

func (l *Logger) Error(msg string) { l.Emit(model.LevelError, msg) }

func (l *Logger) ErrorTag(tag, msg string) { l.Emit(model.LevelError, msg, WithTag(tag)) }

func (l *Logger) ErrorErr(err error) { l.Emit(model.LevelError, "", WithError(err)) }

func (l *Logger) ErrorMsgErr(msg string, err error) {
	l.Emit(model.LevelError, msg, WithError(err))
}

func (l *Logger) ErrorTagErr(tag, msg string, err error) {
	l.Emit(model.LevelError, msg, WithTag(tag), WithError(err))
}
