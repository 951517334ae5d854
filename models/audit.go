package models

import "time"

// Audit event severities. Security violations log HIGH.
const (
	AuditSeverityMedium = "MEDIUM"
	AuditSeverityHigh   = "HIGH"
)

// Audit event kinds beyond plain transitions.
const (
	AuditKindTransition       = "transition"
	AuditKindIdempotentReplay = "idempotent_replay"
	AuditKindStaleEvent       = "stale_event"
	AuditKindRetryAttempt     = "retry_attempt"
	AuditKindValidation       = "validation_error"
	AuditKindSecurity         = "security_violation"
)

// AuditEntry is append-only; never mutated or deleted after write. Payload
// values are masked before they reach the sink.
type AuditEntry struct {
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	RequestID string            `json:"requestId" bson:"requestId"`
	Kind      string            `json:"kind" bson:"kind"`
	Event     EventKind         `json:"event,omitempty" bson:"event,omitempty"`
	FromState RequestState      `json:"fromState,omitempty" bson:"fromState,omitempty"`
	ToState   RequestState      `json:"toState,omitempty" bson:"toState,omitempty"`
	Seq       int64             `json:"seq" bson:"seq"`
	Severity  string            `json:"severity" bson:"severity"`
	Payload   map[string]string `json:"payload,omitempty" bson:"payload,omitempty"`
}
