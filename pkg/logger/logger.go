// +build !logless

// Package logger provides the module-wide zerolog logger the scheduler and
// load engine log through: a single console-writer logger with caller
// annotation, built once at package init.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
)

// Log is the base logger every package in this module derives its
// component logger from via Log.With()....Logger().
var Log = logger.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// Component returns a child logger tagged with the given component name,
// used to tell scheduler/load-engine log lines apart (e.g.
// logger.Component("ndscheduler")).
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}
