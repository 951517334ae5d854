package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freightbook/config"
	"freightbook/models"
	"freightbook/services/booking"
	"freightbook/services/intent"
	"freightbook/utils"
)

// statusFor maps engine error codes onto HTTP statuses.
func statusFor(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeValidation, booking.CodeSecurity:
		return http.StatusBadRequest
	case booking.CodeInvalidTransition, booking.CodeAvailability:
		return http.StatusConflict
	case booking.CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func requestUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// CreateRequestHandler opens a booking request from either a free-text
// message or an already-structured intent.
func CreateRequestHandler(svc booking.BookingService, extractor intent.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Message string             `json:"message"`
			Intent  *models.TripIntent `json:"intent"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		if input.Intent == nil {
			max := config.AppConfig.MaxMessageLength
			if max <= 0 {
				max = 10000
			}
			if input.Message == "" {
				utils.JSONError(c, http.StatusBadRequest, "invalid input", "either message or intent is required")
				return
			}
			if len(input.Message) > max {
				utils.JSONError(c, http.StatusBadRequest, "invalid input", "message exceeds maximum length")
				return
			}
			parsed, err := extractor.Extract(c.Request.Context(), input.Message)
			if err != nil {
				utils.JSONError(c, http.StatusBadGateway, "intent extraction failed", err.Error())
				return
			}
			input.Intent = parsed
		}
		if err := intent.ValidateIntent(input.Intent); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid intent", err.Error())
			return
		}

		req, candidates, err := svc.CreateRequest(c.Request.Context(), requestUserID(c), *input.Intent)
		if err != nil {
			utils.JSONError(c, statusFor(err), "failed to create booking request", err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"request": req, "candidates": candidates})
	}
}

// SearchCandidatesHandler re-runs the catalog search for a request.
func SearchCandidatesHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, candidates, err := svc.SearchCandidates(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, statusFor(err), "search failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req, "candidates": candidates})
	}
}

// SelectCandidateHandler pins one of the offered trucks.
func SelectCandidateHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CandidateID string `json:"candidateId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		req, err := svc.SelectCandidate(c.Request.Context(), c.Param("id"), input.CandidateID)
		if err != nil {
			utils.JSONError(c, statusFor(err), "selection failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req})
	}
}

// SubmitDetailsHandler merges one turn of trip details.
func SubmitDetailsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Fields map[string]string `json:"fields"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if len(input.Fields) == 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "fields must not be empty")
			return
		}
		outcome, err := svc.SubmitDetails(c.Request.Context(), c.Param("id"), input.Fields)
		if err != nil {
			utils.JSONError(c, statusFor(err), "details rejected", err.Error())
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

// UploadDocumentHandler accepts one required document as base64 content.
func UploadDocumentHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type    string `json:"type"`
			Side    string `json:"side"`
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		payload, err := base64.StdEncoding.DecodeString(input.Content)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "content must be base64 encoded")
			return
		}
		req, err := svc.UploadDocument(c.Request.Context(), c.Param("id"), input.Type, models.DocumentSide(input.Side), payload)
		if err != nil {
			utils.JSONError(c, statusFor(err), "document rejected", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req})
	}
}

// StartTransitHandler marks the truck dispatched.
func StartTransitHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := svc.StartTransit(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, statusFor(err), "transit update failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req})
	}
}

// CompleteDeliveryHandler closes a request as delivered.
func CompleteDeliveryHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := svc.CompleteDelivery(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, statusFor(err), "delivery update failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req})
	}
}

// CancelRequestHandler aborts a request.
func CancelRequestHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := svc.Cancel(c.Request.Context(), c.Param("id"), c.Query("reason"))
		if err != nil {
			utils.JSONError(c, statusFor(err), "cancel failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req})
	}
}

// GetStatusHandler returns the current request snapshot.
func GetStatusHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := svc.GetStatus(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, statusFor(err), "status lookup failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"request": req})
	}
}

// HistoryHandler lists the caller's requests, newest first.
func HistoryHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		summaries, err := svc.History(c.Request.Context(), requestUserID(c), limit)
		if err != nil {
			utils.JSONError(c, statusFor(err), "history lookup failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": summaries})
	}
}

// AuditTrailHandler returns the request's audit entries in write order.
func AuditTrailHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.AuditTrail(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, statusFor(err), "audit lookup failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}
