package output

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/daryltucker/stacklog/internal/config"
	"github.com/daryltucker/stacklog/internal/stacklog"
)

// Build assembles the sinks named in cfg into one Sink. The returned
// closer releases any files the sinks hold. With nothing configured the
// result is stacklog.NullSink.
func Build(cfg *config.Config, stderr io.Writer) (stacklog.Sink, func() error, error) {
	if stderr == nil {
		stderr = os.Stderr
	}
	var (
		sinks   []stacklog.Sink
		closers []io.Closer
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	if cfg.Console.Enabled {
		cs := NewConsoleSink(stderr, cfg.Level)
		if cfg.Console.Color != nil {
			cs.SetColor(*cfg.Console.Color)
		}
		sinks = append(sinks, cs)
	}

	if cfg.Slog.Enabled {
		opts := &slog.HandlerOptions{Level: SlogLevel(cfg.Level)}
		var h slog.Handler
		if cfg.Slog.Format == "json" {
			h = slog.NewJSONHandler(stderr, opts)
		} else {
			h = slog.NewTextHandler(stderr, opts)
		}
		sinks = append(sinks, NewSlogSink(slog.New(h)))
	}

	if cfg.JSONLPath != "" {
		js, err := NewJSONLSink(cfg.JSONLPath, cfg.Level)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, js)
		closers = append(closers, js)
	}

	if cfg.CSVPath != "" {
		cs, err := NewCSVSink(cfg.CSVPath, cfg.Level)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, cs)
		closers = append(closers, cs)
	}

	switch len(sinks) {
	case 0:
		return stacklog.NullSink{}, closeAll, nil
	case 1:
		return sinks[0], closeAll, nil
	default:
		return NewFanoutSink(sinks...), closeAll, nil
	}
}
