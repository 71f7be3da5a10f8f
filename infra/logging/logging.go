// Package logging sets up the process-wide zerolog logger. The terminal UI
// owns stdout, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Off disables logging when used as the log path.
const Off = "off"

var zlog = zerolog.Nop()

// Init opens the log file and installs the logger. The returned closer
// flushes and closes the file; it is never nil.
func Init(path, level string) (io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.EqualFold(path, Off) {
		zlog = zerolog.Nop()
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return io.NopCloser(nil), fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("opening log file: %w", err)
	}
	zlog = New(f, level)
	return f, nil
}

// New builds a logger writing JSON lines to w.
func New(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(ParseLevel(level)).With().
		Timestamp().
		Str("service", "termbooru").
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	return &zlog
}

// Set replaces the global logger. Tests use it to capture output.
func Set(l zerolog.Logger) {
	zlog = l
}

// NewRequestID returns a short random id for correlating log lines.
func NewRequestID() string {
	return uuid.New().String()[:8]
}

// WithRequestID returns a logger with request_id field.
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}
