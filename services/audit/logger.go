package audit

import (
	"time"

	"freightbook/database/repository"
	"freightbook/models"
	"freightbook/services/security"

	"go.uber.org/zap"
)

// Logger is the append-only audit sink. Record never propagates a failure to
// the caller: a broken sink must not block a booking transition, so sink
// errors are written to the fallback channel instead.
type Logger interface {
	Record(entry models.AuditEntry)
}

// DefaultLogger writes to the audit repository with the security gate masking
// payloads first and zap as the fallback channel.
type DefaultLogger struct {
	Repo   repository.AuditRepository
	Gate   security.Gate
	Logger *zap.Logger
}

func NewDefaultLogger(repo repository.AuditRepository, gate security.Gate, logger *zap.Logger) *DefaultLogger {
	return &DefaultLogger{Repo: repo, Gate: gate, Logger: logger}
}

// Record masks the payload and appends the entry. A sink failure degrades to
// a warning carrying the full masked entry, so the event never silently
// vanishes.
func (l *DefaultLogger) Record(entry models.AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Severity == "" {
		entry.Severity = models.AuditSeverityMedium
	}
	entry.Payload = l.Gate.MaskPayload(entry.Payload)

	if err := l.Repo.Append(&entry); err != nil {
		l.Logger.Warn("audit sink unavailable, degraded mode",
			zap.Error(err),
			zap.String("requestId", entry.RequestID),
			zap.String("kind", entry.Kind),
			zap.String("event", string(entry.Event)),
			zap.Int64("seq", entry.Seq),
			zap.Any("payload", entry.Payload))
	}
}
