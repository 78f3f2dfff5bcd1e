package utils

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// ParseLevel maps a config level name to a zerolog level
func ParseLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, errors.Errorf("unknown log level %q", level)
	}
}

// NewLogger builds the run logger. Console format is for people, json for
// log shippers. Every entry carries the run id.
func NewLogger(cfg LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "[NewLogger] invalid level")
	}

	out := w
	if cfg.Format != LogFormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger(), nil
}

// DeferredWriter holds writes in memory until Release, then passes them
// through. It keeps log lines off a terminal that a full-screen renderer owns.
type DeferredWriter struct {
	mu   sync.Mutex
	out  io.Writer
	buf  bytes.Buffer
	held bool
}

// NewDeferredWriter starts out holding
func NewDeferredWriter(out io.Writer) *DeferredWriter {
	return &DeferredWriter{out: out, held: true}
}

func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		return d.buf.Write(p)
	}
	return d.out.Write(p)
}

// Release flushes everything held so far and stops holding
func (d *DeferredWriter) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.held {
		return nil
	}
	d.held = false
	if _, err := d.buf.WriteTo(d.out); err != nil {
		return errors.Wrap(err, "[DeferredWriter.Release] failed to flush")
	}
	return nil
}
