package stacklog

import "github.com/daryltucker/stacklog/internal/model"

// std is the process-wide Logger behind the package-level functions.
// Hosts install a sink once at startup with SetSink.
var std = New(NullSink{})

// Default returns the process-wide Logger.
func Default() *Logger { return std }

// SetSink replaces the process-wide sink. nil restores NullSink.
func SetSink(sink Sink) { std.SetSink(sink) }

// IsLoggable reports whether the process-wide sink keeps records at level.
func IsLoggable(level model.Level) bool { return std.IsLoggable(level) }

// Emit logs msg at level through the process-wide Logger.
func Emit(level model.Level, msg string, opts ...Option) int {
	return std.Emit(level, msg, opts...)
}

// Log emits msg under tag at level, segmenting long messages.
func Log(tag, msg string, level model.Level) int { return std.Log(tag, msg, level) }

func Debug(msg string)                       { std.Debug(msg) }
func DebugTag(tag, msg string)               { std.DebugTag(tag, msg) }
func Info(msg string)                        { std.Info(msg) }
func InfoTag(tag, msg string)                { std.InfoTag(tag, msg) }
func Lifecycle(msg string)                   { std.Lifecycle(msg) }
func LifecycleTag(tag, msg string)           { std.LifecycleTag(tag, msg) }
func Quiet(msg string)                       { std.Quiet(msg) }
func QuietTag(tag, msg string)               { std.QuietTag(tag, msg) }
func Warn(msg string)                        { std.Warn(msg) }
func WarnTag(tag, msg string)                { std.WarnTag(tag, msg) }
func WarnErr(err error)                      { std.WarnErr(err) }
func WarnMsgErr(msg string, err error)       { std.WarnMsgErr(msg, err) }
func WarnTagErr(tag, msg string, err error)  { std.WarnTagErr(tag, msg, err) }
func Error(msg string)                       { std.Error(msg) }
func ErrorTag(tag, msg string)               { std.ErrorTag(tag, msg) }
func ErrorErr(err error)                     { std.ErrorErr(err) }
func ErrorMsgErr(msg string, err error)      { std.ErrorMsgErr(msg, err) }
func ErrorTagErr(tag, msg string, err error) { std.ErrorTagErr(tag, msg, err) }

// PrintStackTrace logs at most depth frames of the caller's stack.
func PrintStackTrace(depth int) { std.PrintStackTrace(depth) }

// PrintStackTraceDefault logs DefaultTraceDepth frames of the caller's stack.
func PrintStackTraceDefault() { std.PrintStackTraceDefault() }

// PrintAllStackTrace logs the caller's whole stack.
func PrintAllStackTrace() { std.PrintAllStackTrace() }
