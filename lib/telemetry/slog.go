package telemetry

import (
	"io"
	"log/slog"
	"os"
)

// InitSlog installs a text handler writing to stderr as the default
// logger. verbose lowers the level to debug, which also turns on the
// http message dumps of restyutil.
func InitSlog(verbose bool) {
	slog.SetDefault(slog.New(newHandler(os.Stderr, verbose)))
}

func newHandler(w io.Writer, verbose bool) slog.Handler {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
