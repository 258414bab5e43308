// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logs implements a small leveled logger shared by every subsystem
// in this repository. A single Backend fans each log line out to one or
// more BackendWriters; subsystem packages obtain their own Logger from the
// backend via Backend.Logger, and Logger.SetLevel tunes each one's
// verbosity independently.
package logs

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level.
type Level uint32

// The available logging levels, from most to least verbose.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrings = map[Level]string{
	LevelTrace:    "TRC",
	LevelDebug:    "DBG",
	LevelInfo:     "INF",
	LevelWarn:     "WRN",
	LevelError:    "ERR",
	LevelCritical: "CRT",
	LevelOff:      "OFF",
}

// String returns the short, fixed-width string representation of a level.
func (l Level) String() string {
	if s, ok := levelStrings[l]; ok {
		return s
	}
	return "UNK"
}

// LevelFromString parses a level name, case-insensitively. It returns
// LevelInfo and false when the string does not name a known level.
func LevelFromString(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "critical":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	}
	return LevelInfo, false
}

// BackendWriter is an io.Writer gated by a minimum level: lines below
// minLevel are dropped before ever reaching the underlying writer.
type BackendWriter struct {
	w        io.Writer
	minLevel Level
}

// NewAllLevelsBackendWriter returns a BackendWriter that writes every level.
func NewAllLevelsBackendWriter(w io.Writer) *BackendWriter {
	return &BackendWriter{w: w, minLevel: LevelTrace}
}

// NewErrorBackendWriter returns a BackendWriter that writes LevelError and
// above only, suitable for a dedicated error log file.
func NewErrorBackendWriter(w io.Writer) *BackendWriter {
	return &BackendWriter{w: w, minLevel: LevelError}
}

func (bw *BackendWriter) write(level Level, line string) {
	if level < bw.minLevel {
		return
	}
	io.WriteString(bw.w, line)
}

// Backend multiplexes log lines from every subsystem Logger to its writers.
type Backend struct {
	mu      sync.Mutex
	writers []*BackendWriter
}

// NewBackend creates a Backend fanning out to the given writers.
func NewBackend(writers []*BackendWriter) *Backend {
	return &Backend{writers: writers}
}

// Logger returns a new Logger for the given subsystem tag, defaulting to
// LevelInfo until SetLevel is called.
func (b *Backend) Logger(subsystem string) Logger {
	return Logger{backend: b, subsystem: subsystem, level: &levelBox{level: LevelInfo}}
}

// Close flushes and closes every writer that implements io.Closer.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for _, bw := range b.writers {
		if closer, ok := bw.w.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (b *Backend) print(subsystem string, level Level, msg string) {
	line := fmt.Sprintf("%s [%s] %s: %s\n", time.Now().Format("2006-01-02 15:04:05.000"), level, subsystem, msg)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bw := range b.writers {
		bw.write(level, line)
	}
}

// levelBox makes a Logger's level mutable despite Logger being passed by
// value: every copy of a Logger obtained from the same Backend.Logger call
// shares one box, so SetLevel on one copy is visible through all of them.
type levelBox struct {
	mu    sync.Mutex
	level Level
}

// Logger is a leveled, subsystem-tagged front end onto a Backend. The zero
// value is not usable; obtain one via Backend.Logger or logger.Get.
type Logger struct {
	backend   *Backend
	subsystem string
	level     *levelBox
}

// SetLevel sets the minimum level this logger will emit.
func (l Logger) SetLevel(level Level) {
	l.level.mu.Lock()
	defer l.level.mu.Unlock()
	l.level.level = level
}

// Level returns the logger's current minimum level.
func (l Logger) Level() Level {
	l.level.mu.Lock()
	defer l.level.mu.Unlock()
	return l.level.level
}

// Backend returns the backend this logger writes through.
func (l Logger) Backend() *Backend {
	return l.backend
}

func (l Logger) log(level Level, msg string) {
	if level < l.Level() {
		return
	}
	if l.backend == nil {
		fmt.Fprintln(os.Stderr, msg)
		return
	}
	l.backend.print(l.subsystem, level, msg)
}

// Tracef formats and logs a message at LevelTrace.
func (l Logger) Tracef(format string, args ...interface{}) { l.log(LevelTrace, fmt.Sprintf(format, args...)) }

// Debugf formats and logs a message at LevelDebug.
func (l Logger) Debugf(format string, args ...interface{}) { l.log(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof formats and logs a message at LevelInfo.
func (l Logger) Infof(format string, args ...interface{}) { l.log(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf formats and logs a message at LevelWarn.
func (l Logger) Warnf(format string, args ...interface{}) { l.log(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf formats and logs a message at LevelError.
func (l Logger) Errorf(format string, args ...interface{}) { l.log(LevelError, fmt.Sprintf(format, args...)) }

// Criticalf formats and logs a message at LevelCritical.
func (l Logger) Criticalf(format string, args ...interface{}) {
	l.log(LevelCritical, fmt.Sprintf(format, args...))
}

// Trace logs args at LevelTrace using their default formatting.
func (l Logger) Trace(args ...interface{}) { l.log(LevelTrace, fmt.Sprint(args...)) }

// Warn logs args at LevelWarn using their default formatting.
func (l Logger) Warn(args ...interface{}) { l.log(LevelWarn, fmt.Sprint(args...)) }

// Error logs args at LevelError using their default formatting.
func (l Logger) Error(args ...interface{}) { l.log(LevelError, fmt.Sprint(args...)) }
