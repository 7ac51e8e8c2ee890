// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package logger provides a thin wrapper around zerolog.Logger with the
// constructors used throughout the recovery tool.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on
// *Logger. The scanner process writes its log to a file rather than
// stdout, because the terminal UI owns the standard streams while a scan
// is running.
package logger

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding exposes the
// full zerolog API while leaving room for application helpers.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger writing JSON lines to stderr, tagged
// with the given role label. Every entry carries a timestamp and a "func"
// caller field holding the fully-qualified function name.
func NewLogger(role string) *Logger {
	configureZerolog()
	l := zerolog.New(os.Stderr).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
	return &Logger{l}
}

// NewFileLogger constructs a *Logger appending JSON lines to the file at
// path. If the file cannot be opened the logger falls back to stderr so
// log output is never silently dropped.
func NewFileLogger(role, path string) *Logger {
	configureZerolog()

	out := os.Stderr
	if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		out = f
	}

	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the
// receiver; the child can be enriched with extra context fields without
// affecting the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

func configureZerolog() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}
