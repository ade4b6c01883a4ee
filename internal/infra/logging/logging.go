// Where: cli/internal/infra/logging/logging.go
// What: Diagnostic slog logger for API calls, state transitions and waits.
// Why: Keep user-facing output on the console and diagnostics on stderr.
package logging

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// Options controls the diagnostic logger.
type Options struct {
	Verbose bool
	NoColor bool
}

// New returns a tint-backed logger writing to w. Verbose enables debug
// records; otherwise only warnings and errors are shown.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    opts.NoColor,
		TimeFormat: "[15:04:05.000]",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slog.LevelDebug {
					return tint.Attr(3, slog.String(a.Key, "DBG"))
				}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
