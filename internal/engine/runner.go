/*
PURPOSE:
  Replays a stream of text lines through the logging facade.
  Each line becomes one facade call, so long lines exercise segmentation
  and untagged lines exercise tag derivation.

REQUIREMENTS:
  Implementation-discovered:
  - Lines may carry a "LEVEL|tag|message" or "LEVEL|tag|message|error"
    prefix; plain lines log at the default level.
  - An empty tag field means "derive from the call stack".
  - Needs to report a summary to the CLI.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (replay command)
  - Uses: internal/stacklog, internal/model

ERROR HANDLING:
  - Unparseable level fields are logged and the line is skipped (resilience).
  - Read errors abort the run and are returned wrapped with a stack.
  - Context cancellation stops between lines.

USAGE:
  r := engine.New(stacklog.Default(), model.LevelInfo)
  sum, err := r.Run(ctx, os.Stdin)

RELATED FILES:
  - internal/cli/replay.go
*/

package engine

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/daryltucker/stacklog/internal/model"
	"github.com/daryltucker/stacklog/internal/output"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

// maxLineSize bounds a single input line.
const maxLineSize = 4 << 20

// Summary describes a finished replay.
type Summary struct {
	Lines   int
	Logged  int
	Skipped int
	Chars   int
}

// Replayer feeds lines into a facade Logger.
type Replayer struct {
	log          *stacklog.Logger
	defaultLevel model.Level
}

// New returns a Replayer writing to log. A nil log uses stacklog.Default().
func New(log *stacklog.Logger, defaultLevel model.Level) *Replayer {
	if log == nil {
		log = stacklog.Default()
	}
	return &Replayer{log: log, defaultLevel: defaultLevel}
}

// Entry is one parsed input line.
type Entry struct {
	Level   model.Level
	Tag     string
	HasTag  bool
	Message string
	Err     error
}

// ParseLine splits a replay line into its fields. Lines without a
// recognisable level prefix are returned whole at defaultLevel.
func ParseLine(line string, defaultLevel model.Level) (Entry, error) {
	fields := strings.SplitN(line, "|", 4)
	if len(fields) < 3 {
		return Entry{Level: defaultLevel, Message: line}, nil
	}
	lvl, err := model.ParseLevel(fields[0])
	if err != nil {
		return Entry{}, errors.Wrapf(err, "parse line %q", truncate(line, 40))
	}
	e := Entry{
		Level:   lvl,
		Tag:     fields[1],
		HasTag:  fields[1] != "",
		Message: fields[2],
	}
	if len(fields) == 4 && fields[3] != "" {
		e.Err = errors.New(fields[3])
	}
	return e, nil
}

func (e Entry) options() []stacklog.Option {
	var opts []stacklog.Option
	if e.HasTag {
		opts = append(opts, stacklog.WithTag(e.Tag))
	}
	if e.Err != nil {
		opts = append(opts, stacklog.WithError(e.Err))
	}
	return opts
}

// Run replays every line of src.
func (r *Replayer) Run(ctx context.Context, src io.Reader) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Lines++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			sum.Skipped++
			continue
		}

		entry, err := ParseLine(line, r.defaultLevel)
		if err != nil {
			output.Logger.Warn("Skipping line", "line", sum.Lines, "error", err)
			sum.Skipped++
			continue
		}

		sum.Chars += r.log.Emit(entry.Level, entry.Message, entry.options()...)
		sum.Logged++
	}
	if err := scanner.Err(); err != nil {
		return sum, errors.Wrap(err, "read replay input")
	}

	output.Logger.Debug("Replay complete", "lines", sum.Lines, "logged", sum.Logged, "skipped", sum.Skipped)
	return sum, nil
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i] + "..."
		}
		n--
	}
	return s
}
