package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger provides structured logging for browser-use components. All loggers
// of one process share a session-specific file in ~/.browseruse/logs/, so a
// single file tells the whole story of one run.
//
// The log level is read from BROWSER_USE_LOG_LEVEL (logrus level names);
// unset or unparseable values default to debug so the session file stays
// complete.
type Logger struct {
	sessionID string
	component string
	file      *os.File
	entry     *logrus.Entry
	logPath   string
	closeOnce sync.Once
}

var (
	// Global session ID for the current execution
	sessionID     string
	sessionIDOnce sync.Once

	// logDir is the directory where log files are stored
	logDir string

	// initOnce ensures directory initialization happens once
	initOnce sync.Once

	// initErr stores any error from directory initialization
	initErr error
)

// getSessionID returns or creates the session ID for this execution
func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// initLogDirectory ensures the log directory exists
func initLogDirectory() error {
	initOnce.Do(func() {
		if logDir != "" {
			return
		}

		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".browseruse", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
	})
	return initErr
}

// level reads the configured log level from the environment.
func level() logrus.Level {
	lvl, err := logrus.ParseLevel(os.Getenv("BROWSER_USE_LOG_LEVEL"))
	if err != nil {
		return logrus.DebugLevel
	}
	return lvl
}

// newLogrus builds a logrus logger writing to the given sink.
func newLogrus(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level())
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// NewLogger creates a logger for a specific component, writing to the shared
// session log file ~/.browseruse/logs/<session-id>.log.
//
// If the log directory cannot be created or the file cannot be opened, a
// fallback logger writing to stderr is returned along with the error, so the
// caller stays functional either way.
func NewLogger(component string) (*Logger, error) {
	if err := initLogDirectory(); err != nil {
		return newFallbackLogger(component, err), err
	}

	sessID := getSessionID()
	logPath := filepath.Join(logDir, sessID+".log")

	// Append mode: every component of this session writes to the same file.
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return newFallbackLogger(component, fmt.Errorf("failed to open log file: %w", err)), err
	}

	return &Logger{
		sessionID: sessID,
		component: component,
		file:      file,
		entry:     newLogrus(file).WithField("component", component),
		logPath:   logPath,
	}, nil
}

// newFallbackLogger creates a logger that writes to stderr when file logging
// is unavailable.
func newFallbackLogger(component string, err error) *Logger {
	entry := newLogrus(os.Stderr).WithField("component", component)
	entry.Warnf("file logging unavailable, falling back to stderr: %v", err)

	return &Logger{
		sessionID: getSessionID(),
		component: component,
		entry:     entry,
	}
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// WithField returns a logger that adds the field to every entry it writes.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		sessionID: l.sessionID,
		component: l.component,
		file:      l.file,
		entry:     l.entry.WithField(key, value),
		logPath:   l.logPath,
	}
}

// Writer returns the sink this logger writes to
func (l *Logger) Writer() io.Writer {
	if l.file != nil {
		return l.file
	}
	return os.Stderr
}

// SessionID returns the current session ID
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the path to the log file, empty in fallback mode
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// GetSessionID returns the current global session ID
func GetSessionID() string {
	return getSessionID()
}

// GetLogDirectory returns the directory where logs are stored
func GetLogDirectory() (string, error) {
	if err := initLogDirectory(); err != nil {
		return "", err
	}
	return logDir, nil
}
