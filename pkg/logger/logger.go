// Package logger provides the process-wide structured logger. The default
// logger discards everything: the UI owns the terminal, so nothing may
// write to stdout or stderr while the program runs. Setup switches logging
// to a file, which is how --debug-log works.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerContextKey is unexported so no other package can collide with it.
type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	VersionKey   = "version"
	GoVersionKey = "go_version"
)

var (
	once sync.Once

	// globalZapLogger backs Sync; nil until Setup succeeds.
	globalZapLogger *zap.Logger

	globalLogrLogger *logr.Logger

	defaultNoopLogger = logr.Discard()
)

// Setup points the global logger at a log file at debug level. Only the
// first call has any effect. The file is appended to, never truncated.
func Setup(path, version string) error {
	var setupErr error
	once.Do(func() {
		zl, err := newFileLogger(path, version)
		if err != nil {
			setupErr = err
			return
		}
		globalZapLogger = zl
		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	return setupErr
}

func newFileLogger(path, version string) (*zap.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := ""
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		goVersion = buildInfo.GoVersion
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	).With([]zapcore.Field{
		zap.String(VersionKey, version),
		zap.String(GoVersionKey, goVersion),
	})

	return zap.New(core, zap.AddCaller()), nil
}

// Get returns the global logger, or a no-op logger before Setup.
func Get() *logr.Logger {
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// WithLogger returns a new context with the logger attached. If the
// context already carries the same instance it is returned unchanged.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logger from the context, falling back to the
// global logger and finally to a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Sync flushes buffered log entries. Called once from main before exit.
func Sync() {
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError returns true for the usual Sync failures on pipes
// and TTYs. Windows consoles return ERROR_INVALID_HANDLE wrapped in an
// *os.PathError that does not compare equal to syscall.EINVAL, hence the
// string match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
