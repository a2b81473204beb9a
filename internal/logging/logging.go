// Package logging configures the zerolog logger used by the ncinfo command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "NCINFO_LOG_LEVEL"

// DefaultLevel is used when EnvLevel is unset or empty.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel parses a zerolog level name. An empty name means DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid %s %q: %w", EnvLevel, name, err)
	}
	return level, nil
}

// New returns a console logger writing to w at the given level. Colour is
// only used when w is a terminal.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// SetupLogger configures the global logger on stderr from EnvLevel and
// returns it. An invalid level falls back to DefaultLevel and is reported
// through the new logger.
func SetupLogger() zerolog.Logger {
	level, err := ParseLevel(os.Getenv(EnvLevel))
	log.Logger = New(os.Stderr, level)
	if err != nil {
		log.Warn().Err(err).Msg("using default log level")
	}
	if level <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}
	log.Debug().Stringer("level", level).Msg("logger initialized")
	return log.Logger
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
