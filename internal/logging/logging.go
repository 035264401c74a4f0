package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is attached to every line written by the application logger.
const Prefix = "rapidmcp"

type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultLogger *AppLogger
	once          sync.Once
)

// GetDefault returns the default logger instance (singleton-like for convenience)
func GetDefault() *AppLogger {
	once.Do(func() {
		defaultLogger = NewAppLogger()
	})
	return defaultLogger
}

// Debug logs through the default logger, for packages without one of their own.
func Debug(msg string, keyvals ...interface{}) {
	GetDefault().Debug(msg, keyvals...)
}

// NewAppLogger creates the process logger. It always writes to stderr; stdout
// belongs to the JSON-RPC stream.
func NewAppLogger() *AppLogger {
	return NewAppLoggerTo(os.Stderr, os.Getenv("DEBUG") != "")
}

// NewAppLoggerTo creates a logger writing to w. With debug set, the level is
// Debug and caller locations are reported; otherwise the level is Info.
func NewAppLoggerTo(w io.Writer, debug bool) *AppLogger {
	var logger *log.Logger

	if debug {
		logger = log.NewWithOptions(w, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          Prefix,
		})
		logger.SetLevel(log.DebugLevel)

		logger.Debug("Debug logging enabled")
	} else {
		logger = log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          Prefix,
		})
		logger.SetLevel(log.InfoLevel)
	}

	return &AppLogger{
		logger: logger,
		debug:  debug,
	}
}

// SetLevel changes the minimum level. Accepted values are debug, info, warn
// and error (case-insensitive). An empty string leaves the level unchanged.
func (al *AppLogger) SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	al.logger.SetLevel(lvl)
	al.debug = lvl <= log.DebugLevel
	return nil
}

// Log application events
func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

// Infof writes an unstructured diagnostic line.
func (al *AppLogger) Infof(format string, args ...interface{}) {
	al.logger.Infof(format, args...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

// Pretty print any object (debug only)
func (al *AppLogger) DebugObject(name string, obj interface{}) {
	if al.debug {
		al.logger.Debug("Object dump", "name", name, "object", fmt.Sprintf("%+v", obj))
	}
}

// Log performance metrics
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		duration := time.Since(start)
		al.logger.Debug("Performance",
			"operation", operation,
			"duration", duration,
		)
	}
}

// Testing Helper - NewTestLogger creates a logger that writes to a buffer for testing
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false, // Easier to test without timestamps
		ReportCaller:    false,
		Prefix:          "Test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{
		logger: logger,
		debug:  true,
	}, &buf
}
