package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kingrea/texkeep/internal/config"
)

// Level represents the severity of a log entry.
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
		return "?????"
	}
}

// tailSize bounds the in-memory window served by Tail.
const tailSize = 200

// Logger appends timestamped lines to .texkeep/logs/texkeep.log so users can
// inspect a scan after the terminal scrolls away. It is constructed explicitly
// and passed into each component; there is no package-level instance.
type Logger struct {
	mu     sync.Mutex
	file   *os.File
	mirror io.Writer
	min    Level
	recent []string
}

// Option customizes a Logger during construction.
type Option func(*Logger)

// WithMirror duplicates every entry to w (typically os.Stderr).
func WithMirror(w io.Writer) Option {
	return func(l *Logger) {
		l.mirror = w
	}
}

// WithMinLevel drops entries below level.
func WithMinLevel(level Level) Option {
	return func(l *Logger) {
		l.min = level
	}
}

// New creates (or reuses) the log file for the given thesis directory.
func New(thesisDir string, opts ...Option) (*Logger, error) {
	logDir := filepath.Join(thesisDir, config.TexkeepDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "texkeep.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	logger := &Logger{file: f}
	for _, opt := range opts {
		opt(logger)
	}
	return logger, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.min {
		return
	}
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	line := fmt.Sprintf("%s %-5s %s", time.Now().Format(time.RFC3339), level, message)
	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
	if l.mirror != nil {
		fmt.Fprintln(l.mirror, line)
	}
	l.recent = append(l.recent, line)
	if len(l.recent) > tailSize {
		l.recent = l.recent[len(l.recent)-tailSize:]
	}
}

// Tail returns up to maxLines of the most recent entries, oldest first.
func (l *Logger) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.recent) <= maxLines {
		return append([]string(nil), l.recent...)
	}
	return append([]string(nil), l.recent[len(l.recent)-maxLines:]...)
}
