package booking

import (
	"context"

	"freightbook/models"
)

// BookingService is the orchestration engine driving a booking request
// through its lifecycle. Every method that can change state serializes on a
// per-request lock; external collaborator calls happen outside it.
type BookingService interface {
	CreateRequest(ctx context.Context, userID string, intent models.TripIntent) (*models.BookingRequest, []models.CandidateDTO, error)
	SearchCandidates(ctx context.Context, requestID string) (*models.BookingRequest, []models.CandidateDTO, error)
	SelectCandidate(ctx context.Context, requestID, candidateID string) (*models.BookingRequest, error)
	SubmitDetails(ctx context.Context, requestID string, fields map[string]string) (*DetailOutcome, error)
	UploadDocument(ctx context.Context, requestID, docType string, side models.DocumentSide, payload []byte) (*models.BookingRequest, error)
	StartTransit(ctx context.Context, requestID string) (*models.BookingRequest, error)
	CompleteDelivery(ctx context.Context, requestID string) (*models.BookingRequest, error)
	Cancel(ctx context.Context, requestID, reason string) (*models.BookingRequest, error)
	GetStatus(ctx context.Context, requestID string) (*models.BookingRequest, error)
	History(ctx context.Context, userID string, limit int) ([]models.RequestSummary, error)
	AuditTrail(ctx context.Context, requestID string) ([]models.AuditEntry, error)
}
