package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys used by this package.
type contextKey int

const (
	requestIDKey contextKey = iota
)

// GenerateRequestID creates a new unique request ID for one command
// invocation.
func GenerateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// NewRequestContext creates a new context with a generated request ID.
func NewRequestContext() context.Context {
	return WithRequestID(context.Background(), GenerateRequestID())
}

// RequestIDFromContext extracts the request ID from the context.
// Returns empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFromContext returns a logger with the request ID from context.
// If no request ID is in the context, returns the default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With(KeyRequestID, requestID)
	}
	return logger
}
