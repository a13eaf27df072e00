/*
PURPOSE:
  Writes emitted records to a JSON Lines file (NDJSON).
  Optimized for machine parsing and later replay.

REQUIREMENTS:
  Implementation-discovered:
  - JSON Lines is better for streaming/logging than a single large array (append-friendly).
  - Each segment of a long message is its own line.

ARCHITECTURE INTEGRATION:
  - Installed by: internal/cli when `jsonl_path` is configured
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Constructor returns error on file open failure.
  - Write failures are reported through output.Logger; Log cannot fail.

IMPLEMENTATION RULES:
  - Use goccy/go-json's Encoder.
  - Thread-safe.

USAGE:
  s, err := output.NewJSONLSink("records.jsonl", model.LevelDebug)
  stacklog.SetSink(s)
  defer s.Close()

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/daryltucker/stacklog/internal/model"
)

// JSONLSink appends records to a JSON Lines file.
type JSONLSink struct {
	file    *os.File
	encoder *json.Encoder
	min     model.Level
	mu      sync.Mutex
}

// NewJSONLSink opens path for appending, creating it if needed.
func NewJSONLSink(path string, min model.Level) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return &JSONLSink{
		file:    f,
		encoder: json.NewEncoder(f),
		min:     min,
	}, nil
}

func (js *JSONLSink) Enabled(level model.Level) bool {
	return atLeast(level, js.min)
}

// Log writes a single record as a JSON line.
func (js *JSONLSink) Log(rec model.Record) {
	if !js.Enabled(rec.Level) {
		return
	}
	js.mu.Lock()
	defer js.mu.Unlock()

	if err := js.encoder.Encode(rec); err != nil {
		Logger.Error("Failed to write record to JSONL", "path", js.file.Name(), "error", err)
	}
}

// Close closes the underlying file.
func (js *JSONLSink) Close() error {
	return js.file.Close()
}
