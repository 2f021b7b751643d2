// uartlite/log.go

package uartlite

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies a driver subsystem for log filtering.
type Component string

const (
	ComponentRx      Component = "rx"
	ComponentAsyncTx Component = "tx_async"
)

var (
	// DefaultLogger is the logger used by the driver. The interrupt path
	// never logs.
	DefaultLogger *slog.Logger

	logLevel = new(slog.LevelVar)
	logMutex sync.RWMutex
)

func init() {
	logLevel.Set(slog.LevelWarn)
	DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// SetLogLevel sets the minimum level for driver logging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// GetLogLevel returns the current minimum level.
func GetLogLevel() slog.Level {
	return logLevel.Level()
}

// SetLogger replaces the default logger.
func SetLogger(logger *slog.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	DefaultLogger = logger
}

// NewLogger creates a text logger writing to w at the driver's log level.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func logger() *slog.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return DefaultLogger
}

func logDebug(c Component, msg string, args ...any) {
	logger().Debug(msg, append([]any{"component", string(c)}, args...)...)
}
