package config

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// NewLogger builds the demo logger: colored text through tint, or JSON.
func NewLogger(output io.Writer, cfg Config) *slog.Logger {
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: cfg.LogLevel}))
	}
	handler := tint.NewHandler(output, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05.000",
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler)
}
