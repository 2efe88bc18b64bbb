// Package log is the server's leveled logger. It writes to stderr because
// stdout carries the LSP stream.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug Level = iota
	// LevelInfo is for important operational events
	LevelInfo
	// LevelWarn is for warnings that don't prevent operation
	LevelWarn
	// LevelError is for errors that may affect functionality
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the lower-case name of the level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel Level     = LevelInfo
	prefix   string    = "[VHLS]"
)

// SetOutput sets the output destination (primarily for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Debug logs a debug message (verbose debugging information)
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Info logs an info message (important operational events)
func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Warn logs a warning message (warnings that don't prevent operation)
func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Error logs an error message (errors that may affect functionality)
func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

func log(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel {
		return
	}

	// Skip logging if output is nil (e.g., during test cleanup)
	if output == nil {
		return
	}

	// Format: [VHLS] LEVEL: message
	label := strings.ToUpper(level.String())
	fmt.Fprintf(output, prefix+" "+label+": "+strings.TrimSuffix(format, "\n")+"\n", args...)
}
