package logger

import (
	"io"
	"os"
	"sync"
)

// Log levels accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a process-wide logger writing to stdout.
// The first call fixes the level; later calls return the same instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level, os.Stdout)
	})
	return globalLogger
}

// New builds a standalone logger writing to w. Handy for tests and tools.
func New(level string, w io.Writer) *Logger {
	return newZapLogger(level, w)
}

// ValidLevel reports whether s is one of the known level names.
func ValidLevel(s string) bool {
	switch s {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return true
	}
	return false
}
