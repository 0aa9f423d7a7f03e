// Package logging sets up the charmbracelet/log loggers used by the viewer
// and the facets tool, and carries them through context.Context.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger with timestamp formatting, writing to w and
// filtering below level. Timestamps look like "14:32:01.45".
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Level picks debug or info.
func Level(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// Progress tracks the start time of an operation and logs completion with
// the elapsed duration. Not safe for concurrent use.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress starts timing now.
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Elapsed reports the time since the progress was created.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Done logs msg with the elapsed time, rounded to the millisecond,
// plus any key/value pairs.
func (p *Progress) Done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", p.Elapsed().Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from ctx, or log.Default() if there
// is none.
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Discard returns a logger that drops everything; tests use it.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
