package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger writing structured JSON to stderr.
// It ensures that the logger is initialized only once.
func Init(level string) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil || level == "" {
			lvl = zerolog.InfoLevel
		}
		defaultLogger = zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	})
}

// Get returns the initialized default logger, initializing it at the info
// level if Init was never called.
func Get() zerolog.Logger {
	Init("info")
	return defaultLogger
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	l := Get()
	l.Debug().Msgf(format, args...)
}

// Infof logs a formatted informational message.
func Infof(format string, args ...any) {
	l := Get()
	l.Info().Msgf(format, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) {
	l := Get()
	l.Warn().Msgf(format, args...)
}

// Errorf logs a formatted error message with the wrapped error attached.
func Errorf(err error, format string, args ...any) {
	l := Get()
	l.Error().Err(err).Msgf(format, args...)
}
