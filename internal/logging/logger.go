// Package logging sets up the zerolog console logger for the CLI.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New creates a logger for the given verbosity. Verbosity counts the -v
// flags: 0 is info, 1 is debug, anything above is trace. Quiet drops
// everything below errors.
func New(verbosity int, quiet, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbosity == 1:
		level = zerolog.DebugLevel
	case verbosity > 1:
		level = zerolog.TraceLevel
	}

	output := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: noColor,
		// Timestamps add nothing to an interactive one-shot tool.
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return zerolog.New(output).Level(level)
}
