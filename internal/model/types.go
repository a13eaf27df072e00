/*
PURPOSE:
  Defines the core data structures shared by the facade and the sinks.
  A Level is the closed set of severities, a Record is one emission.

REQUIREMENTS:
  User-specified:
  - Six severities: DEBUG, INFO, LIFECYCLE, WARN, QUIET, ERROR.
  - Each severity has exactly one single-letter display code.

  Implementation-discovered:
  - Sinks need the tag and text separately (structured sinks) as well as
    the fully formatted line (plain text sinks).
  - Config and CLI need to parse levels from strings.

ARCHITECTURE INTEGRATION:
  - Used by: internal/stacklog, internal/output, internal/engine, internal/cli
  - Shared across boundaries.

ERROR HANDLING:
  - ParseLevel returns an error for unknown names.
  - Unknown Level values render as "?" instead of failing.

IMPLEMENTATION RULES:
  - Keep the level table the single source of truth for codes and names.

USAGE:
  lvl, err := model.ParseLevel("warn")
  rec := model.Record{Tag: "net", Level: lvl, Text: "slow"}
  fmt.Println(rec.Line())

RELATED FILES:
  - internal/stacklog/sink.go

MAINTENANCE:
  - Adding a level means adding a row to levelTable.
*/

package model

import (
	"fmt"
	"strings"
	"time"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelLifecycle
	LevelWarn
	LevelQuiet
	LevelError
)

type levelInfo struct {
	code string
	name string
}

var levelTable = [...]levelInfo{
	LevelDebug:     {code: "D", name: "DEBUG"},
	LevelInfo:      {code: "I", name: "INFO"},
	LevelLifecycle: {code: "L", name: "LIFECYCLE"},
	LevelWarn:      {code: "W", name: "WARN"},
	LevelQuiet:     {code: "Q", name: "QUIET"},
	LevelError:     {code: "E", name: "ERROR"},
}

// Levels returns every known level in declaration order.
func Levels() []Level {
	out := make([]Level, len(levelTable))
	for i := range levelTable {
		out[i] = Level(i)
	}
	return out
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l >= 0 && int(l) < len(levelTable)
}

// Code returns the single-letter display code, or "?" for unknown levels.
func (l Level) Code() string {
	if !l.Valid() {
		return "?"
	}
	return levelTable[l].code
}

// String makes Level satisfy the fmt.Stringer interface.
func (l Level) String() string {
	if !l.Valid() {
		return "UNKNOWN"
	}
	return levelTable[l].name
}

// ParseLevel accepts a level name or its code, case-insensitively.
func ParseLevel(s string) (Level, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for i, info := range levelTable {
		if want == info.name || want == info.code {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name or code.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Record is a single emission handed to a sink.
type Record struct {
	Tag   string    `json:"tag"`
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	Time  time.Time `json:"time"`
}

// Line renders the record the way plain text sinks print it:
// tag, two spaces, level code, two spaces, text.
func (r Record) Line() string {
	return r.Tag + "  " + r.Level.Code() + "  " + r.Text
}
