// Package logger wraps log/slog with the event helpers the services share.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger with domain helpers.
type Logger struct {
	*slog.Logger
}

// New logs text at debug level in development and JSON at info level
// everywhere else.
func New(env string) *Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) *Logger {
	if strings.EqualFold(env, "development") {
		return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

// HTTPRequest logs one served request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	level := slog.LevelInfo
	if status >= 500 {
		level = slog.LevelError
	}
	l.Log(context.Background(), level, "http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// StatusCorrected logs a job status that disagreed with its attempts and was
// rewritten. Inconsistent state is an expected correction, not an error.
func (l *Logger) StatusCorrected(jobID, from, to, reason string) {
	l.Warn("job_status_corrected",
		slog.String("job_id", jobID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("reason", reason),
	)
}

// CollaboratorDegraded logs an upstream read that failed and was replaced by
// an empty result so the caller could continue.
func (l *Logger) CollaboratorDegraded(collaborator, subject string, err error) {
	l.Warn("collaborator_degraded",
		slog.String("collaborator", collaborator),
		slog.String("subject", subject),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs a throttled request.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
