package stacklog_test

import (
	"fmt"
	"net"
	"runtime"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/stacklog/internal/model"
	"github.com/daryltucker/stacklog/internal/output"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

type Widget struct {
	log *stacklog.Logger
}

// build logs a warning and returns the line of the logging call.
func (w *Widget) build() int {
	_, _, line, _ := runtime.Caller(0)
	w.log.Warn("slow path")
	return line + 1
}

func (w *Widget) render() {
	w.log.Info("rendered")
}

func (w *Widget) fetch(err error) {
	w.log.ErrorTagErr("net", "fetch failed", err)
}

func (w *Widget) dump() {
	w.log.PrintStackTraceDefault()
}

type boomError struct{}

func (boomError) Error() string { return "boom" }

func newRecorded() (*stacklog.Logger, *output.Recorder) {
	rec := output.NewRecorder()
	return stacklog.New(rec), rec
}

func TestNewNilSinkIsNull(t *testing.T) {
	l := stacklog.New(nil)
	assert.Equal(t, stacklog.NullSink{}, l.Sink())
	for _, lvl := range model.Levels() {
		assert.False(t, l.IsLoggable(lvl), lvl.String())
	}
}

func TestZeroLoggerIsSafe(t *testing.T) {
	var l stacklog.Logger
	assert.NotPanics(t, func() {
		l.Warn("nobody listens")
		l.ErrorErr(errors.New("boom"))
		l.PrintAllStackTrace()
	})
	assert.Equal(t, stacklog.NullSink{}, l.Sink())
}

func TestNullSinkInert(t *testing.T) {
	var s stacklog.NullSink
	for _, lvl := range model.Levels() {
		assert.False(t, s.Enabled(lvl))
	}
	assert.NotPanics(t, func() { s.Log(model.Record{Tag: "t", Text: "x"}) })
}

func TestDefaultLoggerStartsWithNullSink(t *testing.T) {
	assert.Equal(t, stacklog.NullSink{}, stacklog.Default().Sink())
	assert.False(t, stacklog.IsLoggable(model.LevelError))
	assert.NotPanics(t, func() {
		stacklog.Warn("dropped")
		stacklog.ErrorTagErr("net", "dropped", errors.New("boom"))
	})
}

func TestSetSinkRoutesPackageFunctions(t *testing.T) {
	rec := output.NewRecorder(model.LevelWarn)
	stacklog.SetSink(rec)
	t.Cleanup(func() { stacklog.SetSink(nil) })

	assert.True(t, stacklog.IsLoggable(model.LevelWarn))
	assert.False(t, stacklog.IsLoggable(model.LevelDebug))

	stacklog.InfoTag("boot", "ready")
	stacklog.Debug("details")

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, model.Record{Tag: "boot", Level: model.LevelInfo, Text: "ready", Time: records[0].Time}, records[0])
	assert.Equal(t, "stacklog_test", records[1].Tag)
	assert.Equal(t, "details", records[1].Text)

	stacklog.SetSink(nil)
	assert.Equal(t, stacklog.NullSink{}, stacklog.Default().Sink())
}

func TestIsLoggableUnknownLevel(t *testing.T) {
	l, _ := newRecorded()
	assert.False(t, l.IsLoggable(model.Level(42)))
	assert.False(t, l.IsLoggable(model.Level(-1)))
}

func TestWarnPrefixesCallSite(t *testing.T) {
	l, rec := newRecorded()
	w := &Widget{log: l}

	line := w.build()

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Widget", records[0].Tag)
	assert.Equal(t, model.LevelWarn, records[0].Level)
	assert.Equal(t, fmt.Sprintf("Widget.build(logger_test.go:%d), slow path", line), records[0].Text)
}

func TestErrorWithTagAndError(t *testing.T) {
	l, rec := newRecorded()
	w := &Widget{log: l}

	w.fetch(boomError{})

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "net", records[0].Tag)
	assert.Equal(t, model.LevelError, records[0].Level)
	assert.Equal(t, "fetch failed, stacklog_test.boomError: boom", records[0].Text)
}

func TestRoutineLevelsAreNotEnriched(t *testing.T) {
	l, rec := newRecorded()
	w := &Widget{log: l}

	w.render()
	l.Debug("d")
	l.LifecycleTag("build", "l")
	l.Quiet("q")

	records := rec.Records()
	require.Len(t, records, 4)
	assert.Equal(t, model.Record{Tag: "Widget", Level: model.LevelInfo, Text: "rendered", Time: records[0].Time}, records[0])
	assert.Equal(t, "d", records[1].Text)
	assert.Equal(t, "stacklog_test", records[1].Tag)
	assert.Equal(t, "build", records[2].Tag)
	assert.Equal(t, model.LevelLifecycle, records[2].Level)
	assert.Equal(t, model.LevelQuiet, records[3].Level)
	assert.Equal(t, "q", records[3].Text)
}

func TestWarnAndErrorShapes(t *testing.T) {
	err := boomError{}
	trace := stacklog.StackTraceString(err)

	tests := []struct {
		name    string
		call    func(l *stacklog.Logger)
		level   model.Level
		tag     string
		text    string
		prefix  bool
		records int
	}{
		{name: "warn tag", call: func(l *stacklog.Logger) { l.WarnTag("disk", "full") }, level: model.LevelWarn, tag: "disk", text: "full", prefix: true, records: 1},
		{name: "warn err", call: func(l *stacklog.Logger) { l.WarnErr(err) }, level: model.LevelWarn, tag: "stacklog_test", text: trace, records: 1},
		{name: "warn nil err", call: func(l *stacklog.Logger) { l.WarnErr(nil) }, records: 0},
		{name: "warn msg err", call: func(l *stacklog.Logger) { l.WarnMsgErr("retry", err) }, level: model.LevelWarn, tag: "stacklog_test", text: "retry, " + trace, records: 1},
		{name: "warn msg nil err", call: func(l *stacklog.Logger) { l.WarnMsgErr("retry", nil) }, level: model.LevelWarn, tag: "stacklog_test", text: "retry", prefix: true, records: 1},
		{name: "warn tag err", call: func(l *stacklog.Logger) { l.WarnTagErr("db", "slow", err) }, level: model.LevelWarn, tag: "db", text: "slow, " + trace, records: 1},
		{name: "error", call: func(l *stacklog.Logger) { l.Error("bad") }, level: model.LevelError, tag: "stacklog_test", text: "bad", prefix: true, records: 1},
		{name: "error tag", call: func(l *stacklog.Logger) { l.ErrorTag("db", "bad") }, level: model.LevelError, tag: "db", text: "bad", prefix: true, records: 1},
		{name: "error err", call: func(l *stacklog.Logger) { l.ErrorErr(err) }, level: model.LevelError, tag: "stacklog_test", text: trace, records: 1},
		{name: "error msg err", call: func(l *stacklog.Logger) { l.ErrorMsgErr("lost", err) }, level: model.LevelError, tag: "stacklog_test", text: "lost, " + trace, records: 1},
		{name: "error tag nil err", call: func(l *stacklog.Logger) { l.ErrorTagErr("db", "lost", nil) }, level: model.LevelError, tag: "db", text: "lost", prefix: true, records: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, rec := newRecorded()
			tt.call(l)

			records := rec.Records()
			require.Len(t, records, tt.records)
			if tt.records == 0 {
				return
			}
			got := records[0]
			assert.Equal(t, tt.level, got.Level)
			assert.Equal(t, tt.tag, got.Tag)
			if tt.prefix {
				assert.True(t, strings.HasPrefix(got.Text, "stacklog_test.TestWarnAndErrorShapes.func"), got.Text)
				assert.Contains(t, got.Text, "(logger_test.go:")
				assert.True(t, strings.HasSuffix(got.Text, "), "+tt.text), got.Text)
			} else {
				assert.Equal(t, tt.text, got.Text)
			}
		})
	}
}

func TestErrorMessageSuppressedForUnknownHost(t *testing.T) {
	l, rec := newRecorded()
	dnsErr := &net.DNSError{Err: "no such host", Name: "example.invalid", IsNotFound: true}

	l.ErrorErr(errors.Wrap(dnsErr, "resolve"))
	l.ErrorTagErr("net", "offline", dnsErr)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "offline, ", records[0].Text)
}

func TestEmitOptions(t *testing.T) {
	l, rec := newRecorded()

	n := l.Emit(model.LevelInfo, "hello", stacklog.WithTag(""))
	l.Emit(model.LevelDebug, "with err", stacklog.WithError(boomError{}))

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "", records[0].Tag)
	assert.Equal(t, len("  I  hello"), n)
	assert.Equal(t, "with err, stacklog_test.boomError: boom", records[1].Text)
}

func TestLogSingleSegment(t *testing.T) {
	l, rec := newRecorded()
	msg := strings.Repeat("a", stacklog.SegmentSize)

	n := l.Log("tag", msg, model.LevelInfo)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, msg, records[0].Text)
	assert.Equal(t, len("tag  I  ")+stacklog.SegmentSize, n)
}

func TestLogSplitsLongMessages(t *testing.T) {
	for _, length := range []int{stacklog.SegmentSize + 1, 2 * stacklog.SegmentSize, 2*stacklog.SegmentSize + 17, 5*stacklog.SegmentSize - 1} {
		t.Run(fmt.Sprint(length), func(t *testing.T) {
			l, rec := newRecorded()
			var sb strings.Builder
			for i := 0; sb.Len() < length; i++ {
				sb.WriteByte(byte('a' + i%26))
			}
			msg := sb.String()

			n := l.Log("seg", msg, model.LevelWarn)

			records := rec.Records()
			want := (length + stacklog.SegmentSize - 1) / stacklog.SegmentSize
			require.Len(t, records, want)

			var rebuilt strings.Builder
			total := 0
			for i, r := range records {
				assert.Equal(t, "seg", r.Tag)
				assert.Equal(t, model.LevelWarn, r.Level)
				if i < len(records)-1 {
					assert.Len(t, r.Text, stacklog.SegmentSize)
				}
				rebuilt.WriteString(r.Text)
				total += len(r.Line())
			}
			assert.Equal(t, msg, rebuilt.String())
			assert.Equal(t, total, n)
		})
	}
}

func TestLogSegmentsKeepRunesWhole(t *testing.T) {
	l, rec := newRecorded()
	msg := strings.Repeat("é", stacklog.SegmentSize+10)

	l.Log("utf8", msg, model.LevelInfo)

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, stacklog.SegmentSize, utf8.RuneCountInString(records[0].Text))
	assert.Equal(t, 10, utf8.RuneCountInString(records[1].Text))
	assert.True(t, utf8.ValidString(records[0].Text))
	assert.Equal(t, msg, records[0].Text+records[1].Text)
}

func TestLogEmptyMessage(t *testing.T) {
	l, rec := newRecorded()

	assert.Equal(t, 0, l.Log("tag", "", model.LevelError))
	l.Info("")
	assert.Empty(t, rec.Records())
}

func TestCallerTagAndInfo(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	info := stacklog.CallerInfo()

	assert.Equal(t, "stacklog_test", stacklog.CallerTag())
	assert.Equal(t, fmt.Sprintf("stacklog_test.TestCallerTagAndInfo(logger_test.go:%d)", line+1), info)
}

func TestPrintStackTrace(t *testing.T) {
	l, rec := newRecorded()

	l.PrintStackTrace(2)

	records := rec.Records()
	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, model.LevelLifecycle, got.Level)
	assert.Equal(t, "stacklog_test", got.Tag)

	lines := strings.Split(strings.TrimPrefix(got.Text, "\n"), "\n")
	assert.LessOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "stacklog_test.TestPrintStackTrace(logger_test.go:")
	assert.NotContains(t, got.Text, "internal/stacklog.(*Logger)")
}

func TestPrintStackTraceDefaultTagsCaller(t *testing.T) {
	l, rec := newRecorded()
	(&Widget{log: l}).dump()

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Widget", records[0].Tag)
	lines := strings.Split(strings.TrimPrefix(records[0].Text, "\n"), "\n")
	assert.LessOrEqual(t, len(lines), stacklog.DefaultTraceDepth)
	assert.Contains(t, lines[0], ".(*Widget).dump(logger_test.go:")
}

// tracingSink prints a stack trace from inside Log, so the stack holds
// facade frames below the sink's own frame.
type tracingSink struct {
	trace *stacklog.Logger
	depth int
}

func (s *tracingSink) Enabled(model.Level) bool { return true }

func (s *tracingSink) Log(model.Record) { s.trace.PrintStackTrace(s.depth) }

func TestPrintStackTraceDepthCountsOnlyPrintedFrames(t *testing.T) {
	trace, rec := newRecorded()
	l := stacklog.New(&tracingSink{trace: trace, depth: 3})

	l.Info("hello")

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "tracingSink", records[0].Tag)
	lines := strings.Split(strings.TrimPrefix(records[0].Text, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], ".(*tracingSink).Log(logger_test.go:")
	assert.Contains(t, lines[1], "TestPrintStackTraceDepthCountsOnlyPrintedFrames(logger_test.go:")
	assert.Contains(t, lines[2], "testing.tRunner(")
}

func TestPrintStackTraceNonPositiveDepth(t *testing.T) {
	l, rec := newRecorded()
	l.PrintStackTrace(0)
	l.PrintStackTrace(-3)
	assert.Empty(t, rec.Records())
}

func TestPrintAllStackTrace(t *testing.T) {
	l, rec := newRecorded()

	l.PrintAllStackTrace()

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Text, "TestPrintAllStackTrace")
	assert.Contains(t, records[0].Text, "testing.tRunner(")
}

func TestConcurrentSetSink(t *testing.T) {
	l := stacklog.New(nil)
	a, b := output.NewRecorder(), output.NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				l.InfoTag("race", "msg")
			}
		}()
	}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			l.SetSink(a)
		} else {
			l.SetSink(b)
		}
	}
	wg.Wait()

	assert.LessOrEqual(t, len(a.Records())+len(b.Records()), 8*200)
}
