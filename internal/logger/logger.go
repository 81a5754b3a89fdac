// Package logger provides a small leveled logger for the pipeline.
// Three levels: off, normal (info/warn/error), verbose (adds debug).
// Safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Level controls verbosity.
type Level int32

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal enables info, warn and error output.
	LevelNormal
	// LevelVerbose enables everything including debug.
	LevelVerbose
)

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	level atomic.Int32
	out   *log.Logger
}

// New creates a logger writing to out (os.Stderr when nil).
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{out: log.New(out, "", log.Ltime)}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) { l.level.Store(int32(level)) }

// Level returns the current level.
func (l *Logger) Level() Level { return Level(l.level.Load()) }

func (l *Logger) emit(min Level, tag, format string, args ...any) {
	if Level(l.level.Load()) < min {
		return
	}
	l.out.Output(3, tag+" "+fmt.Sprintf(format, args...))
}

// Debug logs at debug level (verbose only).
func (l *Logger) Debug(format string, args ...any) { l.emit(LevelVerbose, "[DBG]", format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) { l.emit(LevelNormal, "[INF]", format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) { l.emit(LevelNormal, "[WRN]", format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) { l.emit(LevelNormal, "[ERR]", format, args...) }
