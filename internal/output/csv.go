/*
PURPOSE:
  Writes emitted records to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  Implementation-discovered:
  - A fresh file gets a header row; an existing one is appended to.
  - Multi-line texts (stack traces) are quoted by encoding/csv.

ARCHITECTURE INTEGRATION:
  - Installed by: internal/cli when `csv_path` is configured
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Constructor returns error on file creation or header write failure.
  - Write failures are reported through output.Logger.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Use Mutex; the facade may be called from many goroutines.

USAGE:
  s, err := output.NewCSVSink("records.csv", model.LevelInfo)
  defer s.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Log() mapping when Record struct changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"sync"
	"time"

	"github.com/daryltucker/stacklog/internal/model"
)

var csvHeader = []string{"timestamp", "level", "code", "tag", "text"}

// CSVSink appends records to a CSV file.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
	min    model.Level
	mu     sync.Mutex
}

// NewCSVSink opens path for appending and writes the header if the file
// is empty.
func NewCSVSink(path string, min model.Level) (*CSVSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
	}

	return &CSVSink{
		file:   f,
		writer: w,
		min:    min,
	}, nil
}

func (cs *CSVSink) Enabled(level model.Level) bool {
	return atLeast(level, cs.min)
}

// Log writes a single record to the CSV file.
// It is thread-safe.
func (cs *CSVSink) Log(rec model.Record) {
	if !cs.Enabled(rec.Level) {
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	row := []string{
		rec.Time.UTC().Format(time.RFC3339Nano),
		rec.Level.String(),
		rec.Level.Code(),
		rec.Tag,
		rec.Text,
	}

	if err := cs.writer.Write(row); err != nil {
		Logger.Error("Failed to write record to CSV", "path", cs.file.Name(), "error", err)
		return
	}
	cs.writer.Flush()
	if err := cs.writer.Error(); err != nil {
		Logger.Error("Failed to flush CSV", "path", cs.file.Name(), "error", err)
	}
}

// Close closes the underlying file.
func (cs *CSVSink) Close() error {
	cs.writer.Flush()
	return cs.file.Close()
}
