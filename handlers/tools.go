package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightbook/models"
	"freightbook/services/booking"
	"freightbook/services/intent"
)

// Tool envelope shapes. Clients always get HTTP 200 with ok=false on a tool
// failure; transport-level statuses are reserved for unknown tools and bad
// JSON.
type toolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toolOK(c *gin.Context, result interface{}) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}

func toolFail(c *gin.Context, err error) {
	code := booking.ErrorCode(err)
	if code == "" {
		code = booking.CodeValidation
	}
	c.JSON(http.StatusOK, gin.H{"ok": false, "error": toolError{Code: code, Message: err.Error()}})
}

// ToolInvokeHandler exposes the engine's operations as named tools for
// programmatic callers.
func ToolInvokeHandler(svc booking.BookingService, extractor intent.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		ctx := c.Request.Context()

		switch name {
		case "parse_trip_request":
			var args struct {
				Message string `json:"message"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			parsed, err := extractor.Extract(ctx, args.Message)
			if err != nil {
				toolFail(c, booking.NewExternalServiceError(err.Error()))
				return
			}
			if err := intent.ValidateIntent(parsed); err != nil {
				toolFail(c, booking.NewValidationError(err.Error()))
				return
			}
			toolOK(c, parsed)

		case "create_booking_request":
			var args struct {
				Intent models.TripIntent `json:"intent"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			if err := intent.ValidateIntent(&args.Intent); err != nil {
				toolFail(c, booking.NewValidationError(err.Error()))
				return
			}
			req, candidates, err := svc.CreateRequest(ctx, requestUserID(c), args.Intent)
			if err != nil {
				toolFail(c, err)
				return
			}
			toolOK(c, gin.H{"request": req, "candidates": candidates})

		case "search_trucks":
			var args struct {
				RequestID string `json:"requestId"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			req, candidates, err := svc.SearchCandidates(ctx, args.RequestID)
			if err != nil {
				toolFail(c, err)
				return
			}
			toolOK(c, gin.H{"request": req, "candidates": candidates})

		case "select_truck":
			var args struct {
				RequestID   string `json:"requestId"`
				CandidateID string `json:"candidateId"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			req, err := svc.SelectCandidate(ctx, args.RequestID, args.CandidateID)
			if err != nil {
				toolFail(c, err)
				return
			}
			toolOK(c, gin.H{"request": req})

		case "submit_trip_details":
			var args struct {
				RequestID string            `json:"requestId"`
				Fields    map[string]string `json:"fields"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			outcome, err := svc.SubmitDetails(ctx, args.RequestID, args.Fields)
			if err != nil {
				toolFail(c, err)
				return
			}
			toolOK(c, outcome)

		case "get_booking_status":
			var args struct {
				RequestID string `json:"requestId"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			req, err := svc.GetStatus(ctx, args.RequestID)
			if err != nil {
				toolFail(c, err)
				return
			}
			toolOK(c, gin.H{"request": req})

		case "cancel_booking":
			var args struct {
				RequestID string `json:"requestId"`
				Reason    string `json:"reason"`
			}
			if err := c.ShouldBindJSON(&args); err != nil {
				toolFail(c, booking.NewValidationError("invalid arguments: "+err.Error()))
				return
			}
			req, err := svc.Cancel(ctx, args.RequestID, args.Reason)
			if err != nil {
				toolFail(c, err)
				return
			}
			toolOK(c, gin.H{"request": req})

		default:
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": toolError{
				Code:    booking.CodeValidation,
				Message: "unknown tool " + name,
			}})
		}
	}
}
