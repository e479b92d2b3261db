package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger builds the process logger: colorized tint output for local
// development, JSON for everything else. Every line carries the service name
// so aggregated logs stay attributable.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	switch env {
	case "dev", "local":
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
			AddSource:  true,
		})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		})
	}
	return slog.New(handler).With("service", "stayquote")
}
