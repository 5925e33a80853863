package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the service-wide zerolog.Logger. Development gets a
// human-readable console writer at debug level; every other environment
// emits leveled JSON.
func NewLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "expostandai").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases zerolog.Logger so the rest of the codebase depends on one
// logging surface instead of importing the module everywhere.
type Logger = zerolog.Logger
