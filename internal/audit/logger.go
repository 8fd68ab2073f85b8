// Package audit provides a log-backed implementation of domain.AuditLogger.
package audit

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jumx0202/ordersvc/domain"
)

// LogAuditLogger writes audit events to a standard logger as JSON lines.
type LogAuditLogger struct {
	logger *log.Logger
}

// NewLogAuditLogger creates an audit logger. A nil logger falls back to the
// process default.
func NewLogAuditLogger(logger *log.Logger) domain.AuditLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &LogAuditLogger{logger: logger}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	l.logger.Printf("audit: %s", data)
	return nil
}

var _ domain.AuditLogger = (*LogAuditLogger)(nil)
