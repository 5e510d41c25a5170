// Package diag provides the process-wide diagnostic channel used by the
// clickatell-go library. Diagnostics are disabled by default; when disabled
// no output is produced regardless of call volume.
package diag

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = newDefaultLogger()
)

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Enable turns the diagnostic channel on.
func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

// Disable turns the diagnostic channel off.
func Disable() {
	mu.Lock()
	enabled = false
	mu.Unlock()
}

// Enabled reports whether diagnostics are currently emitted.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetLogger replaces the sink. Passing nil restores the default logger.
func SetLogger(l *logrus.Logger) {
	mu.Lock()
	if l == nil {
		l = newDefaultLogger()
	}
	logger = l
	mu.Unlock()
}

func sink() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Printf emits a formatted debug message when diagnostics are enabled.
func Printf(format string, args ...any) {
	if !Enabled() {
		return
	}
	sink().Debugf(format, args...)
}

// Warnf emits a formatted warning when diagnostics are enabled.
func Warnf(format string, args ...any) {
	if !Enabled() {
		return
	}
	sink().Warnf(format, args...)
}

// Errorf emits a formatted error message when diagnostics are enabled.
func Errorf(format string, args ...any) {
	if !Enabled() {
		return
	}
	sink().Errorf(format, args...)
}
