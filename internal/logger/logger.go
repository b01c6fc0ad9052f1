package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"ecclesia-backend/internal/auth"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// Setup configures the process-wide logrus instance: JSON to the given
// writer (stdout when nil) at the named level. Unknown levels fall back to info.
func Setup(level string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(out)
	logrus.SetLevel(ParseLevel(level))
}

// ParseLevel maps LOG_LEVEL values onto logrus levels
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithContext creates a logger tagged with the principal carried by ctx
func WithContext(ctx context.Context) *Logger {
	logger := New()

	p, ok := auth.PrincipalFromContext(ctx)
	switch {
	case ok && p.Email != "":
		logger.Entry = logger.Entry.WithFields(logrus.Fields{"user": p.Email, "principal_id": p.ID.String()})
	case ok:
		logger.Entry = logger.Entry.WithField("user", p.ID.String())
	default:
		logger.Entry = logger.Entry.WithField("user", "unknown")
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger.Entry = logger.Entry.WithField("request_id", requestID)
	}

	return logger
}

type contextKey string

// RequestIDKey is the context key the request-id middleware stores its value under
const RequestIDKey contextKey = "request_id"

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithError attaches err under the standard logrus error key
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
