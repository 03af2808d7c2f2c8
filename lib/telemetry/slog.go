package telemetry

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// InitSlog installs the process-wide logger. pretty enables the
// colorized tint handler for interactive CLI use, otherwise plain
// text goes to stderr.
func InitSlog(pretty bool) {
	var handler slog.Handler
	if pretty {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	slog.SetDefault(slog.New(handler))
}
