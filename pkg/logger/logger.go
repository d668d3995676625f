package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"videoflix-service/pkg/config"
)

// Logger wraps logrus so call sites stay stable if the backend changes.
type Logger struct {
	entry *logrus.Logger
}

var (
	mu     sync.RWMutex
	global *Logger
)

// NewLogger builds a logger from the log section of the configuration.
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level)); err == nil {
			level = parsed
		}
		if strings.EqualFold(cfg.Log.Format, "json") {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
	}
	l.SetLevel(level)

	return &Logger{entry: l}
}

// SetGlobalLogger installs the process-wide logger.
func SetGlobalLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

func get() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global != nil {
		return global.entry
	}
	return logrus.StandardLogger()
}

// Close flushes the logger. Kept for symmetry with other resources.
func (l *Logger) Close() {}

func Debug(args ...interface{})                 { get().Debug(args...) }
func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { get().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { get().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Fatal logs the message and exits the process.
func Fatal(msg string) { get().Fatal(msg) }

// Fatalf logs a formatted message and exits the process.
func Fatalf(format string, args ...interface{}) { get().Fatal(fmt.Sprintf(format, args...)) }
