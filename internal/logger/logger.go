package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog instance. Call it before anything else
// in main so startup errors are already structured.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if lvlStr := os.Getenv("LOG_LEVEL"); lvlStr != "" {
		if parsed, err := zerolog.ParseLevel(lvlStr); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	log.Info().Str("level", level.String()).Msg("Logger initialized")
}
