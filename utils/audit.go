package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AuditLogger appends one JSON line per user action.
type AuditLogger struct {
	logger *zap.Logger
}

// NewAuditLogger writes to path. An empty path yields a logger that drops everything.
func NewAuditLogger(path string) (*AuditLogger, error) {
	if path == "" {
		return NewAuditLoggerFrom(zap.NewNop()), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %s: %w", path, err)
	}
	return NewAuditLoggerFrom(l), nil
}

// NewAuditLoggerFrom wraps an existing zap logger. The entry time is
// written by the logger's encoder.
func NewAuditLoggerFrom(l *zap.Logger) *AuditLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditLogger{logger: l}
}

// Record logs that userID performed action.
func (a *AuditLogger) Record(userID int64, action string) {
	a.logger.Info("user request",
		zap.Int64("userId", userID),
		zap.String("action", action),
	)
}

// Sync flushes buffered entries.
func (a *AuditLogger) Sync() error {
	return a.logger.Sync()
}
