package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/loja-api/internal/config"
)

const serviceName = "loja-api"

// NewLogger creates a structured zerolog.Logger writing to stdout.
func NewLogger(cfg config.LogConfig) zerolog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
