// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledgerlog sets up structured logging for the ledgerengine CLI
// on top of github.com/luxfi/geth/log, the same logging dependency and
// call pattern the teacher's own cmd/evm-node/main.go uses
// (log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(...)))).
// Trimmed relative to the teacher's own log/compat.go shim: no glog
// verbosity flag, no rotating file handler — see DESIGN.md.
package ledgerlog

import (
	"io"
	"log/slog"

	"github.com/luxfi/geth/log"
)

// Logger is the handle returned by Setup and used throughout the CLI.
type Logger = log.Logger

// LevelInfo is the default level when --log-level is absent or invalid.
const LevelInfo = log.LevelInfo

// LevelFromString parses a level name ("trace", "debug", "info",
// "warn", "error", "crit") for the --log-level flag.
func LevelFromString(name string) (slog.Level, error) {
	return log.LvlFromString(name)
}

// Setup installs a terminal logger writing to w at the given level as
// the process-wide default, and returns it.
func Setup(w io.Writer, level slog.Level) Logger {
	l := log.NewLogger(log.NewTerminalHandlerWithLevel(w, level, false))
	log.SetDefault(l)
	return l
}

// Global convenience wrappers over the default logger, used by code
// that doesn't carry a Logger value of its own.
func Info(msg string, ctx ...interface{})  { log.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { log.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { log.Error(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { log.Debug(msg, ctx...) }
