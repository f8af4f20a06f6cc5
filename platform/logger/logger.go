// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with the request ID extracted from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.WithRequestID(requestID)
	}

	return l
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// UpstreamCall logs an outbound call to an external collaborator.
func (l *Logger) UpstreamCall(service, method, endpoint string, status int) {
	l.Info("upstream_call",
		slog.String("service", service),
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", status),
	)
}

// UpstreamError logs a failed outbound call to an external collaborator.
func (l *Logger) UpstreamError(service, endpoint string, err error) {
	l.Error("upstream_error",
		slog.String("service", service),
		slog.String("endpoint", endpoint),
		slog.String("error", err.Error()),
	)
}

// CRMWriteSkipped logs a CRM write that was skipped because a required
// entity identifier never resolved.
func (l *Logger) CRMWriteSkipped(operation, reason string) {
	l.Warn("crm_write_skipped",
		slog.String("operation", operation),
		slog.String("reason", reason),
	)
}
