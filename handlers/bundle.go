// File: freightbook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"freightbook/services/booking"
	"freightbook/services/intent"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	CreateRequest    gin.HandlerFunc
	SearchCandidates gin.HandlerFunc
	SelectCandidate  gin.HandlerFunc
	SubmitDetails    gin.HandlerFunc
	UploadDocument   gin.HandlerFunc
	StartTransit     gin.HandlerFunc
	CompleteDelivery gin.HandlerFunc
	CancelRequest    gin.HandlerFunc
	GetStatus        gin.HandlerFunc
	History          gin.HandlerFunc
	AuditTrail       gin.HandlerFunc

	// Tool surface
	ToolInvoke gin.HandlerFunc
}

// NewHandlerBundle wires every handler to the services it needs.
func NewHandlerBundle(svc booking.BookingService, extractor intent.Extractor) *HandlerBundle {
	return &HandlerBundle{
		CreateRequest:    CreateRequestHandler(svc, extractor),
		SearchCandidates: SearchCandidatesHandler(svc),
		SelectCandidate:  SelectCandidateHandler(svc),
		SubmitDetails:    SubmitDetailsHandler(svc),
		UploadDocument:   UploadDocumentHandler(svc),
		StartTransit:     StartTransitHandler(svc),
		CompleteDelivery: CompleteDeliveryHandler(svc),
		CancelRequest:    CancelRequestHandler(svc),
		GetStatus:        GetStatusHandler(svc),
		History:          HistoryHandler(svc),
		AuditTrail:       AuditTrailHandler(svc),
		ToolInvoke:       ToolInvokeHandler(svc, extractor),
	}
}
