package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(New(os.Stderr, "info", "text"))
}

// New builds a logger writing to w. format "json" selects slog's JSON
// handler; anything else uses tint's colorized text handler.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}))
}

// Init replaces the package logger and the slog default.
func Init(level, format string) {
	SetLogger(New(os.Stderr, level, format))
}

// SetLogger replaces the package logger and the slog default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	slog.SetDefault(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values
// map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// DebugWithComponent logs at debug level tagged with a component attribute.
func DebugWithComponent(component, msg string, args ...any) {
	Logger().With("component", component).Debug(msg, args...)
}

// InfoWithComponent logs at info level tagged with a component attribute.
func InfoWithComponent(component, msg string, args ...any) {
	Logger().With("component", component).Info(msg, args...)
}

// WarnWithComponent logs at warn level tagged with a component attribute.
func WarnWithComponent(component, msg string, args ...any) {
	Logger().With("component", component).Warn(msg, args...)
}

// ErrorWithComponent logs at error level tagged with a component attribute.
func ErrorWithComponent(component, msg string, args ...any) {
	Logger().With("component", component).Error(msg, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
