package repository

import (
	"freightbook/models"
)

// BookingRequestRepository persists booking request aggregates, one document
// per request keyed by request ID.
type BookingRequestRepository interface {
	Create(req *models.BookingRequest) error
	Update(req *models.BookingRequest) error
	GetByID(id string) (*models.BookingRequest, error)
	ListByUser(userID string, limit int) ([]models.RequestSummary, error)
}

// AuditRepository is the append-only sink for audit entries.
type AuditRepository interface {
	Append(entry *models.AuditEntry) error
	ListByRequest(requestID string) ([]models.AuditEntry, error)
}
