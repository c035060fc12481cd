// Package logs builds the structured logger used by the pipeline and CLI.
package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

type Logger = *slog.Logger

// Options configures New.
type Options struct {
	Level  slog.Leveler
	Format string    // "text" (default) or "json"
	Writer io.Writer // defaults to os.Stderr
	// Discard disables the terminal handler, leaving only Sink.
	Discard bool
	// Sink receives one rendered line per record.
	Sink func(string)
}

// New returns a logger fanning every record out to the terminal handler and,
// when set, the sink.
func New(opts Options) Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	handlerOptions := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if !opts.Discard {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		if opts.Format == "json" {
			handlers = append(handlers, slog.NewJSONHandler(w, handlerOptions))
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, handlerOptions))
		}
	}
	if opts.Sink != nil {
		handlers = append(handlers, Sink(opts.Sink, level))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// Sink adapts a single-argument line sink into a slog handler. Records are
// rendered in text form without the time attribute.
func Sink(fn func(string), level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(sinkWriter(fn), &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}

// sinkWriter receives exactly one record per Write from slog's text handler.
type sinkWriter func(string)

func (w sinkWriter) Write(p []byte) (int, error) {
	w(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return slog.New(slogmulti.Fanout())
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
