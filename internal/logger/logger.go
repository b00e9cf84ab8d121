// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the logger.
type Options struct {
	Level  string    // debug, info, warn, error
	Debug  bool      // forces debug level
	JSON   bool      // JSON lines instead of console output
	Output io.Writer // defaults to stderr
}

// Init replaces the global logger according to opts.
func Init(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.JSON {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	zerolog.SetGlobalLevel(ParseLevel(opts.Level, opts.Debug))
}

// ParseLevel maps a level name to a zerolog level; unknown names fall back to info.
func ParseLevel(level string, debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
