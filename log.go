package inkling

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name case-insensitively. Unknown names map
// to LevelInfo.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger is a small leveled wrapper around the standard logger.
type Logger struct {
	logger *log.Logger
	level  Level
}

// NewLogger returns a Logger writing to out with the [inkling] prefix.
func NewLogger(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "[inkling] ", 0),
		level:  level,
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.level <= LevelDebug {
		l.logger.Printf("DEBUG: "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.level <= LevelInfo {
		l.logger.Printf("INFO: "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.level <= LevelWarn {
		l.logger.Printf("WARN: "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.level <= LevelError {
		l.logger.Printf("ERROR: "+format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Level() Level {
	return l.level
}

// logger is the package-wide logger. Replace it with SetLogger.
var logger = NewLogger(os.Stderr, LevelInfo)

// SetLogger replaces the package logger. A nil logger silences output.
func SetLogger(l *Logger) {
	if l == nil {
		l = NewLogger(io.Discard, LevelNone)
	}
	logger = l
}

// DefaultLogger returns the package logger.
func DefaultLogger() *Logger {
	return logger
}
