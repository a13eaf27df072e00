package output

import (
	"context"
	"log/slog"

	"github.com/daryltucker/stacklog/internal/model"
)

// SlogSink forwards records to a slog.Logger. The record text becomes
// the message; tag and level code travel as attributes.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink wraps logger. A nil logger uses slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Enabled(level model.Level) bool {
	return level.Valid() && s.logger.Enabled(context.Background(), SlogLevel(level))
}

func (s *SlogSink) Log(rec model.Record) {
	s.logger.LogAttrs(context.Background(), SlogLevel(rec.Level), rec.Text,
		slog.String("tag", rec.Tag),
		slog.String("code", rec.Level.Code()),
	)
}
