package output

import (
	"sync"

	"github.com/daryltucker/stacklog/internal/model"
)

// Recorder is an in-memory sink. It keeps every record it is given,
// regardless of level, and reports the levels in Enable as enabled.
type Recorder struct {
	mu      sync.Mutex
	records []model.Record
	enabled map[model.Level]bool
}

// NewRecorder returns a Recorder with the given levels enabled. With no
// levels, every level is enabled.
func NewRecorder(levels ...model.Level) *Recorder {
	if len(levels) == 0 {
		levels = model.Levels()
	}
	r := &Recorder{enabled: make(map[model.Level]bool, len(levels))}
	for _, l := range levels {
		r.enabled[l] = true
	}
	return r
}

func (r *Recorder) Enabled(level model.Level) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[level]
}

func (r *Recorder) Log(rec model.Record) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
}

// Records returns a copy of everything logged so far.
func (r *Recorder) Records() []model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Reset forgets recorded records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}
