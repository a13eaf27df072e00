package output

import (
	"github.com/daryltucker/stacklog/internal/model"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

// FanoutSink forwards each record to every child sink that has the
// record's level enabled.
type FanoutSink struct {
	sinks []stacklog.Sink
}

// NewFanoutSink drops nil children.
func NewFanoutSink(sinks ...stacklog.Sink) *FanoutSink {
	filtered := make([]stacklog.Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &FanoutSink{sinks: filtered}
}

func (f *FanoutSink) Enabled(level model.Level) bool {
	for _, s := range f.sinks {
		if s.Enabled(level) {
			return true
		}
	}
	return false
}

func (f *FanoutSink) Log(rec model.Record) {
	for _, s := range f.sinks {
		if s.Enabled(rec.Level) {
			s.Log(rec)
		}
	}
}
