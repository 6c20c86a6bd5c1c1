package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Debug level outside production,
// info level in production.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(os.Stdout).With().Timestamp().Str("service", "contacthub").Logger()
	if env == "production" {
		return l.Level(zerolog.InfoLevel)
	}
	return l.Level(zerolog.DebugLevel)
}
