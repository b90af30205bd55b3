// Package logger provides leveled, prefixed logging for the simulation and
// its collaborators. A nil *Logger is valid and discards everything.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes info and warning lines to one sink and errors to another.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates a logger writing to stdout and stderr.
func NewLogger() *Logger {
	return New(os.Stdout, os.Stderr)
}

// New creates a logger with explicit sinks.
func New(out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		infoLogger:  log.New(out, "[WILD-INFO] ", flags),
		warnLogger:  log.New(out, "[WILD-WARN] ", flags),
		errorLogger: log.New(errOut, "[WILD-ERROR] ", flags),
	}
}

// Discard returns a logger that writes nowhere.
func Discard() *Logger {
	return New(io.Discard, io.Discard)
}

func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.infoLogger.Println(msg)
}

func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.infoLogger.Printf(format, args...)
}

func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.warnLogger.Println(msg)
}

func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.warnLogger.Printf(format, args...)
}

func (l *Logger) Error(msg string) {
	if l == nil {
		return
	}
	l.errorLogger.Println(msg)
}

func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.errorLogger.Printf(format, args...)
}

// Event logs a named simulation event against the entity it concerns.
func (l *Logger) Event(eventType string, entityID string, details string) {
	if l == nil {
		return
	}
	l.infoLogger.Printf("[EVENT:%s] %s | %s", eventType, entityID, details)
}

// Std exposes the info sink for libraries that want a *log.Logger.
func (l *Logger) Std() *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l.infoLogger
}

// Eventf is Event with a formatted detail string.
func (l *Logger) Eventf(eventType string, entityID string, format string, args ...any) {
	if l == nil {
		return
	}
	l.Event(eventType, entityID, fmt.Sprintf(format, args...))
}
