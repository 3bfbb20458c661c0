package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).
		Level(zerolog.InfoLevel).
		With().Timestamp().Str("service", "contracts").Logger()
}
