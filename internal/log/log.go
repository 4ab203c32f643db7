// Package log provides category tagged, leveled logging for cppedit.
// It writes through tea.LogToFile because Bubble Tea owns the terminal, and
// stays silent unless enabled with --debug or CPPEDIT_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
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
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatHighlight Category = "highlight" // rule engine and state propagation
	CatEdit      Category = "edit"      // smart-edit decisions
	CatConfig    Category = "config"    // configuration loading/saving
	CatUI        Category = "ui"        // editor model updates
)

// EnvDebug enables logging when set to a non-empty value other than "0".
const EnvDebug = "CPPEDIT_DEBUG"

// Logger writes one line per entry:
//
//	2026-01-02T15:04:05 [DEBUG] [highlight] message key=value
//
// A nil *Logger discards everything.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	minLevel Level
	now      func() time.Time
}

// New returns a logger writing to w at debug level.
func New(w io.Writer) *Logger {
	return &Logger{writer: w, minLevel: LevelDebug, now: time.Now}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Enabled reports whether debug logging was requested by flag or environment.
func Enabled(flag bool) bool {
	if flag {
		return true
	}
	v := strings.TrimSpace(os.Getenv(EnvDebug))
	return v != "" && v != "0"
}

// Init opens path with tea.LogToFile and installs it as the default logger.
// The returned function closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "cppedit")
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	SetDefault(New(f))
	return func() {
		SetDefault(nil)
		_ = f.Close()
	}, nil
}

// SetDefault replaces the default logger. nil disables logging.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Default returns the default logger, possibly nil.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetMinLevel sets the minimum level written.
func (l *Logger) SetMinLevel(level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

func (l *Logger) Debug(cat Category, msg string, fields ...any) {
	l.log(LevelDebug, cat, msg, fields...)
}

func (l *Logger) Info(cat Category, msg string, fields ...any) {
	l.log(LevelInfo, cat, msg, fields...)
}

func (l *Logger) Warn(cat Category, msg string, fields ...any) {
	l.log(LevelWarn, cat, msg, fields...)
}

func (l *Logger) Error(cat Category, msg string, fields ...any) {
	l.log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func (l *Logger) ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	l.log(LevelError, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel || l.writer == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", l.now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	// Orphan key without a value.
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')
	_, _ = io.WriteString(l.writer, sb.String())
}

// Debug logs at debug level on the default logger.
func Debug(cat Category, msg string, fields ...any) { Default().Debug(cat, msg, fields...) }

// Info logs at info level on the default logger.
func Info(cat Category, msg string, fields ...any) { Default().Info(cat, msg, fields...) }

// Warn logs at warning level on the default logger.
func Warn(cat Category, msg string, fields ...any) { Default().Warn(cat, msg, fields...) }

// Error logs at error level on the default logger.
func Error(cat Category, msg string, fields ...any) { Default().Error(cat, msg, fields...) }

// ErrorErr logs err at error level on the default logger.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	Default().ErrorErr(cat, msg, err, fields...)
}
