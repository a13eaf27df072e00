package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/daryltucker/stacklog/internal/model"
)

var levelColors = map[model.Level]color.Attribute{
	model.LevelDebug:     color.FgHiBlack,
	model.LevelInfo:      color.FgGreen,
	model.LevelLifecycle: color.FgCyan,
	model.LevelWarn:      color.FgYellow,
	model.LevelQuiet:     color.FgMagenta,
	model.LevelError:     color.FgRed,
}

// ConsoleSink prints Record.Line() to a writer, one record per line.
type ConsoleSink struct {
	mu       sync.Mutex
	writer   io.Writer
	min      model.Level
	colorize bool
}

// NewConsoleSink writes records at min or above to w. The level code is
// coloured when w is a terminal.
func NewConsoleSink(w io.Writer, min model.Level) *ConsoleSink {
	return &ConsoleSink{writer: w, min: min, colorize: shouldColorize(w)}
}

// SetColor forces colouring on or off.
func (s *ConsoleSink) SetColor(on bool) {
	s.mu.Lock()
	s.colorize = on
	s.mu.Unlock()
}

func (s *ConsoleSink) Enabled(level model.Level) bool {
	return atLeast(level, s.min)
}

func (s *ConsoleSink) Log(rec model.Record) {
	if !s.Enabled(rec.Level) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	code := rec.Level.Code()
	if s.colorize {
		c := color.New(levelColors[rec.Level])
		c.EnableColor()
		code = c.Sprint(code)
	}
	if _, err := fmt.Fprintf(s.writer, "%s  %s  %s\n", rec.Tag, code, rec.Text); err != nil {
		Logger.Debug("console write failed", "error", err)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// atLeast orders levels by their slog severity.
func atLeast(level, min model.Level) bool {
	return level.Valid() && SlogLevel(level) >= SlogLevel(min)
}
