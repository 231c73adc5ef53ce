// Package csllog provides leveled logging for the csl driver, gated by
// the --log-level flag so that only rank 0 prints diagnostics.
package csllog

import (
	"log"
	"strings"
)

// Level is the logging verbosity, ordered least to most verbose.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// ParseLevel maps a --log-level flag value to a Level, defaulting to
// LevelInfo for an unrecognized string.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger that only emits output when Enabled is true,
// so that non-rank-0 simulated ranks can share a Logger silenced at
// construction time.
type Logger struct {
	level   Level
	Enabled bool
}

// New creates a Logger at the given level. Enabled defaults to true; the
// driver sets it false on every rank but rank 0.
func New(level Level) *Logger {
	return &Logger{level: level, Enabled: true}
}

func (l *Logger) log(at Level, prefix, format string, args ...interface{}) {
	if l == nil || !l.Enabled || l.level < at {
		return
	}
	log.Printf(prefix+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, "[ERROR] ", format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, "[WARN] ", format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, "[INFO] ", format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, "[DEBUG] ", format, args...) }
func (l *Logger) Trace(format string, args ...interface{}) { l.log(LevelTrace, "[TRACE] ", format, args...) }
