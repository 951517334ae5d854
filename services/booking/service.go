package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freightbook/config"
	"freightbook/database/repository"
	"freightbook/models"
	"freightbook/services/audit"
	"freightbook/services/catalog"
	"freightbook/services/document"
	"freightbook/services/notification"
	"freightbook/services/security"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const snapshotTTL = 30 * time.Minute

// DefaultBookingService is the production implementation of BookingService.
// Cache is optional; with a nil client snapshots are simply skipped.
type DefaultBookingService struct {
	Repo      repository.BookingRequestRepository
	AuditRepo repository.AuditRepository
	Catalog   catalog.Client
	Verifier  Verifier
	Store     document.Store
	Checker   document.Checker
	Gate      security.Gate
	Audit     audit.Logger
	Notifier  notification.Dispatcher
	Cache     *redis.Client
	Logger    *zap.Logger

	locks *lockRegistry
}

func NewDefaultBookingService(
	repo repository.BookingRequestRepository,
	auditRepo repository.AuditRepository,
	catalogClient catalog.Client,
	verifier Verifier,
	store document.Store,
	checker document.Checker,
	gate security.Gate,
	auditLogger audit.Logger,
	notifier notification.Dispatcher,
	cache *redis.Client,
	logger *zap.Logger,
) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:      repo,
		AuditRepo: auditRepo,
		Catalog:   catalogClient,
		Verifier:  verifier,
		Store:     store,
		Checker:   checker,
		Gate:      gate,
		Audit:     auditLogger,
		Notifier:  notifier,
		Cache:     cache,
		Logger:    logger,
		locks:     newLockRegistry(),
	}
}

// CreateRequest validates the structured intent, persists a new request in
// the searching state, and runs the initial catalog search. An empty result
// leaves the request in searching so the user can retry with other dates.
func (s *DefaultBookingService) CreateRequest(ctx context.Context, userID string, intent models.TripIntent) (*models.BookingRequest, []models.CandidateDTO, error) {
	if userID == "" {
		return nil, nil, NewValidationError("user id is required")
	}
	route, err := s.routeFromIntent(intent)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	req := &models.BookingRequest{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Route:              *route,
		BudgetLimit:        intent.Budget,
		State:              models.StateSearching,
		ExcludedCandidates: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Create(req); err != nil {
		return nil, nil, NewFatalError(fmt.Sprintf("failed to persist booking request: %v", err))
	}

	s.Audit.Record(models.AuditEntry{
		RequestID: req.ID,
		Kind:      models.AuditKindTransition,
		ToState:   models.StateSearching,
		Seq:       req.Seq,
		Payload:   map[string]string{"action": "created", "origin": route.Origin, "destination": route.Destination},
	})
	s.cacheSnapshot(ctx, req)

	dtos, err := s.runSearch(ctx, req)
	if err != nil {
		return req, nil, err
	}
	return req, dtos, nil
}

// routeFromIntent checks the language collaborator's output once more at the
// engine boundary before it can reach the state machine.
func (s *DefaultBookingService) routeFromIntent(intent models.TripIntent) (*models.RouteCriteria, error) {
	if intent.IntentKind != models.IntentBookTrip {
		return nil, NewValidationError(fmt.Sprintf("intent kind %q cannot open a booking request", intent.IntentKind))
	}
	for name, v := range map[string]string{"origin": intent.Origin, "destination": intent.Destination} {
		if err := s.Gate.ValidateText(v); err != nil {
			return nil, NewValidationError(fmt.Sprintf("invalid %s: %v", name, err))
		}
	}
	start, err := time.Parse("2006-01-02", intent.StartDate)
	if err != nil {
		return nil, NewValidationError("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", intent.EndDate)
	if err != nil {
		return nil, NewValidationError("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, NewValidationError("end_date precedes start_date")
	}
	return &models.RouteCriteria{
		Origin:      s.Gate.Sanitize(intent.Origin),
		Destination: s.Gate.Sanitize(intent.Destination),
		WindowStart: start,
		WindowEnd:   end,
		PartyCount:  intent.PartyCount,
	}, nil
}

// SearchCandidates re-runs the catalog search. Allowed while searching and
// while choosing an alternative after a rejection; the latter path enforces
// the retry ceiling and fails the request when the catalog has nothing left.
func (s *DefaultBookingService) SearchCandidates(ctx context.Context, requestID string) (*models.BookingRequest, []models.CandidateDTO, error) {
	release := s.locks.acquire(requestID)
	req, err := s.load(requestID)
	if err != nil {
		release()
		return nil, nil, err
	}
	if req.State != models.StateSearching && req.State != models.StateRetrySelection {
		release()
		return req, nil, NewInvalidTransition(fmt.Sprintf("search is not permitted in state %q", req.State))
	}

	if req.State == models.StateRetrySelection {
		max := config.AppConfig.MaxRetrySelections
		if max <= 0 {
			max = 5
		}
		if req.RetrySelections > max {
			req.FailureReason = "retry limit reached"
			err := s.applyTransition(ctx, req, models.EventFailed, map[string]string{"reason": req.FailureReason})
			release()
			return req, nil, err
		}
	}
	release()

	dtos, err := s.runSearch(ctx, req)
	return req, dtos, err
}

// runSearch calls the catalog outside the lock, then reacquires it to apply
// the outcome. A concurrent transition in the meantime discards the result.
func (s *DefaultBookingService) runSearch(ctx context.Context, req *models.BookingRequest) ([]models.CandidateDTO, error) {
	fromState := req.State
	seqAtDispatch := req.Seq
	criteria := models.SearchCriteria{
		Origin:      req.Route.Origin,
		Destination: req.Route.Destination,
		WindowStart: req.Route.WindowStart.Format("2006-01-02"),
		WindowEnd:   req.Route.WindowEnd.Format("2006-01-02"),
		Excluded:    req.ExcludedCandidates,
	}
	candidates, err := s.Catalog.Search(ctx, criteria)
	if err != nil {
		return nil, NewExternalServiceError(fmt.Sprintf("catalog search failed: %v", err))
	}

	release := s.locks.acquire(req.ID)
	defer release()
	fresh, err := s.load(req.ID)
	if err != nil {
		return nil, err
	}
	*req = *fresh
	if req.Seq != seqAtDispatch || req.State != fromState {
		s.recordStale(req, "search result arrived after a newer transition")
		return nil, nil
	}

	ranked := catalog.Rank(candidates, req.ExcludedCandidates)
	if len(ranked) == 0 {
		if req.State == models.StateRetrySelection {
			req.FailureReason = "no alternatives available"
			if err := s.applyTransition(ctx, req, models.EventFailed, map[string]string{"reason": req.FailureReason}); err != nil {
				return nil, err
			}
			return nil, nil
		}
		// Nothing found on the first pass: stay searching.
		s.Logger.Info("catalog returned no candidates",
			zap.String("requestId", req.ID),
			zap.String("origin", criteria.Origin),
			zap.String("destination", criteria.Destination))
		return nil, nil
	}

	event := models.EventCandidatesFound
	if req.State == models.StateRetrySelection {
		event = models.EventRetrySearch
	}
	if err := s.applyTransition(ctx, req, event, map[string]string{"candidates": fmt.Sprintf("%d", len(ranked))}); err != nil {
		return nil, err
	}
	s.cacheCandidates(ctx, req.ID, ranked)
	return catalog.ExtractDTOs(ranked, s.Gate.Mask), nil
}

// SelectCandidate pins an offer and moves on to detail collection. Offers the
// request has already burned through are refused.
func (s *DefaultBookingService) SelectCandidate(ctx context.Context, requestID, candidateID string) (*models.BookingRequest, error) {
	release := s.locks.acquire(requestID)
	defer release()

	req, err := s.load(requestID)
	if err != nil {
		return nil, err
	}
	if candidateID == "" {
		return req, NewValidationError("candidate id is required")
	}
	if req.Excluded(candidateID) {
		return req, NewValidationError(fmt.Sprintf("candidate %s was already rejected for this request", candidateID))
	}
	if offered, ok := s.cachedCandidateIDs(ctx, requestID); ok && !offered[candidateID] {
		return req, NewValidationError(fmt.Sprintf("candidate %s is not among the current offers", candidateID))
	}
	if req.State == models.StateCollectingDetails && req.SelectedCandidateID == candidateID {
		s.recordReplay(req, models.EventCandidateSelected)
		return req, nil
	}

	req.SelectedCandidateID = candidateID
	if err := s.applyTransition(ctx, req, models.EventCandidateSelected, map[string]string{"candidateId": candidateID}); err != nil {
		return req, err
	}
	return req, nil
}

// SubmitDetails merges one user turn of trip details. Fields that pass
// validation stick even when siblings in the same turn fail. Once the
// required set is complete the request moves to verification and the
// verifier is driven to an outcome before returning.
func (s *DefaultBookingService) SubmitDetails(ctx context.Context, requestID string, fields map[string]string) (*DetailOutcome, error) {
	release := s.locks.acquire(requestID)
	req, err := s.load(requestID)
	if err != nil {
		release()
		return nil, err
	}
	if req.State != models.StateCollectingDetails {
		if req.State == models.StateVerifyingAvailability {
			s.recordReplay(req, models.EventDetailsComplete)
			release()
			return &DetailOutcome{Complete: true, State: req.State}, nil
		}
		release()
		return nil, NewInvalidTransition(fmt.Sprintf("details are not accepted in state %q", req.State))
	}

	if req.Details == nil {
		req.Details = &models.TripDetails{}
	}
	outcome := &DetailOutcome{Invalid: map[string]string{}}
	for field, value := range fields {
		if err := s.Gate.ValidateText(value); err != nil {
			outcome.Invalid[field] = err.Error()
			s.Audit.Record(models.AuditEntry{
				RequestID: req.ID,
				Kind:      models.AuditKindSecurity,
				Severity:  models.AuditSeverityHigh,
				Seq:       req.Seq,
				Payload:   map[string]string{"field": field, "reason": err.Error()},
			})
			continue
		}
		if err := mergeField(req.Details, field, s.Gate.Sanitize(value)); err != nil {
			outcome.Invalid[field] = err.Error()
			s.Audit.Record(models.AuditEntry{
				RequestID: req.ID,
				Kind:      models.AuditKindValidation,
				Seq:       req.Seq,
				Payload:   map[string]string{"field": field, "reason": err.Error()},
			})
			continue
		}
		outcome.Accepted = append(outcome.Accepted, field)
	}
	if len(outcome.Invalid) == 0 {
		outcome.Invalid = nil
	}

	req.Details.UpdatedAt = time.Now()
	req.UpdatedAt = time.Now()
	if err := s.Repo.Update(req); err != nil {
		release()
		return nil, NewFatalError(fmt.Sprintf("failed to persist details: %v", err))
	}
	s.cacheSnapshot(ctx, req)

	outcome.Outstanding = req.Details.Outstanding()
	outcome.Complete = req.Details.Complete()
	if len(outcome.Invalid) > 0 {
		s.notify(ctx, req, "We need a correction", fmt.Sprintf("%d field(s) could not be accepted", len(outcome.Invalid)))
	}
	if !outcome.Complete {
		outcome.State = req.State
		release()
		return outcome, nil
	}

	if err := s.applyTransition(ctx, req, models.EventDetailsComplete, nil); err != nil {
		release()
		return nil, err
	}
	candidateID := req.SelectedCandidateID
	details := *req.Details
	seqAtDispatch := req.Seq
	release()

	if err := s.verifyAndApply(ctx, requestID, candidateID, details, seqAtDispatch); err != nil {
		return nil, err
	}
	final, err := s.GetStatus(ctx, requestID)
	if err != nil {
		return nil, err
	}
	outcome.State = final.State
	return outcome, nil
}

// verifyAndApply runs the availability verifier outside the lock and applies
// its outcome only if the request has not moved since dispatch.
func (s *DefaultBookingService) verifyAndApply(ctx context.Context, requestID, candidateID string, details models.TripDetails, seqAtDispatch int64) error {
	result, verr := s.verifyWithRetry(ctx, candidateID, details, func(attempt int, err error) {
		s.Audit.Record(models.AuditEntry{
			RequestID: requestID,
			Kind:      models.AuditKindRetryAttempt,
			Seq:       seqAtDispatch,
			Payload:   map[string]string{"attempt": fmt.Sprintf("%d", attempt), "error": err.Error()},
		})
	})

	release := s.locks.acquire(requestID)
	defer release()
	req, err := s.load(requestID)
	if err != nil {
		return err
	}
	if req.Seq != seqAtDispatch || req.State != models.StateVerifyingAvailability {
		s.recordStale(req, "verification outcome arrived after a newer transition")
		return nil
	}

	if verr != nil {
		// Retries exhausted: release the candidate and let the user pick again.
		return s.rejectCandidate(ctx, req, candidateID, verr.Error())
	}
	if !result.Confirmed {
		reason := result.Reason
		if reason == "" {
			reason = "candidate declined the booking"
		}
		return s.rejectCandidate(ctx, req, candidateID, reason)
	}

	now := time.Now()
	req.Booking = &models.Booking{
		Reference:   result.BookingReference,
		CandidateID: candidateID,
		Status:      models.StateConfirmed,
		ConfirmedAt: now,
	}
	if err := s.applyTransition(ctx, req, models.EventVerifyConfirmed, map[string]string{"bookingReference": result.BookingReference}); err != nil {
		return err
	}

	// Confirmation immediately opens the document stage.
	req.Documents = buildDocumentSet(now)
	return s.applyTransition(ctx, req, models.EventDocumentsRequested, map[string]string{"documents": fmt.Sprintf("%d", len(req.Documents))})
}

func (s *DefaultBookingService) rejectCandidate(ctx context.Context, req *models.BookingRequest, candidateID, reason string) error {
	if !req.Excluded(candidateID) {
		req.ExcludedCandidates = append(req.ExcludedCandidates, candidateID)
	}
	req.SelectedCandidateID = ""
	req.RetrySelections++
	return s.applyTransition(ctx, req, models.EventVerifyRejected, map[string]string{
		"candidateId": candidateID,
		"reason":      reason,
	})
}

// UploadDocument stores the payload, has it checked, and applies the result.
// When the last required document clears, the request advances on its own.
func (s *DefaultBookingService) UploadDocument(ctx context.Context, requestID, docType string, side models.DocumentSide, payload []byte) (*models.BookingRequest, error) {
	release := s.locks.acquire(requestID)
	req, err := s.load(requestID)
	if err != nil {
		release()
		return nil, err
	}
	if req.State != models.StateDocumentsPending {
		release()
		return req, NewInvalidTransition(fmt.Sprintf("documents are not accepted in state %q", req.State))
	}
	if findDocument(req.Documents, docType, side) == nil {
		release()
		return req, NewValidationError(fmt.Sprintf("document type %q is not required for side %q", docType, side))
	}
	if len(payload) == 0 {
		release()
		return req, NewValidationError("document payload is empty")
	}
	seqAtDispatch := req.Seq
	release()

	recordID, err := s.Store.Upload(ctx, docType, payload)
	if err != nil {
		return nil, NewExternalServiceError(fmt.Sprintf("document upload failed: %v", err))
	}
	verified, notes, err := s.Checker.Check(ctx, recordID)
	if err != nil {
		return nil, NewExternalServiceError(fmt.Sprintf("document check failed: %v", err))
	}

	release = s.locks.acquire(requestID)
	defer release()
	req, err = s.load(requestID)
	if err != nil {
		return nil, err
	}
	if req.Seq != seqAtDispatch || req.State != models.StateDocumentsPending {
		s.recordStale(req, "document check outcome arrived after a newer transition")
		return req, nil
	}

	rec := findDocument(req.Documents, docType, side)
	if rec == nil {
		return req, NewValidationError(fmt.Sprintf("document type %q is not required for side %q", docType, side))
	}
	rec.RecordID = recordID
	rec.UploadStatus = models.DocumentUploaded
	rec.UpdatedAt = time.Now()
	if verified {
		rec.VerificationStatus = models.DocumentVerified
	} else {
		rec.VerificationStatus = models.DocumentRejected
		rec.VerifierNotes = notes
		s.Audit.Record(models.AuditEntry{
			RequestID: req.ID,
			Kind:      models.AuditKindValidation,
			Seq:       req.Seq,
			Payload:   map[string]string{"document": docType, "side": string(side), "reason": notes},
		})
	}

	req.UpdatedAt = time.Now()
	if err := s.Repo.Update(req); err != nil {
		return nil, NewFatalError(fmt.Sprintf("failed to persist document result: %v", err))
	}
	s.cacheSnapshot(ctx, req)

	if !verified {
		s.notify(ctx, req, "Document rejected", fmt.Sprintf("%s was rejected: %s", docType, notes))
		return req, nil
	}
	if allDocumentsVerified(req.Documents) {
		if err := s.applyTransition(ctx, req, models.EventDocumentsVerified, nil); err != nil {
			return req, err
		}
	}
	return req, nil
}

// StartTransit marks the truck as dispatched.
func (s *DefaultBookingService) StartTransit(ctx context.Context, requestID string) (*models.BookingRequest, error) {
	return s.simpleTransition(ctx, requestID, models.EventTransitStarted, nil)
}

// CompleteDelivery closes the request in its happy terminal state.
func (s *DefaultBookingService) CompleteDelivery(ctx context.Context, requestID string) (*models.BookingRequest, error) {
	return s.simpleTransition(ctx, requestID, models.EventDelivered, nil)
}

// Cancel aborts the request from any non-terminal state.
func (s *DefaultBookingService) Cancel(ctx context.Context, requestID, reason string) (*models.BookingRequest, error) {
	var payload map[string]string
	if reason != "" {
		payload = map[string]string{"reason": reason}
	}
	release := s.locks.acquire(requestID)
	defer release()
	req, err := s.load(requestID)
	if err != nil {
		return nil, err
	}
	req.FailureReason = reason
	if err := s.applyTransition(ctx, req, models.EventCancelled, payload); err != nil {
		return req, err
	}
	return req, nil
}

func (s *DefaultBookingService) simpleTransition(ctx context.Context, requestID string, event models.EventKind, payload map[string]string) (*models.BookingRequest, error) {
	release := s.locks.acquire(requestID)
	defer release()
	req, err := s.load(requestID)
	if err != nil {
		return nil, err
	}
	if err := s.applyTransition(ctx, req, event, payload); err != nil {
		return req, err
	}
	return req, nil
}

// GetStatus serves the snapshot from cache when fresh, falling back to the
// repository.
func (s *DefaultBookingService) GetStatus(ctx context.Context, requestID string) (*models.BookingRequest, error) {
	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, snapshotKey(requestID)).Result()
		if err == nil {
			var req models.BookingRequest
			if jsonErr := json.Unmarshal([]byte(raw), &req); jsonErr == nil {
				return &req, nil
			}
		}
	}
	req, err := s.load(requestID)
	if err != nil {
		return nil, err
	}
	s.cacheSnapshot(ctx, req)
	return req, nil
}

// History lists the user's requests, newest first.
func (s *DefaultBookingService) History(ctx context.Context, userID string, limit int) ([]models.RequestSummary, error) {
	if userID == "" {
		return nil, NewValidationError("user id is required")
	}
	summaries, err := s.Repo.ListByUser(userID, limit)
	if err != nil {
		return nil, NewFatalError(fmt.Sprintf("failed to list requests: %v", err))
	}
	return summaries, nil
}

// AuditTrail returns the request's audit entries in write order.
func (s *DefaultBookingService) AuditTrail(ctx context.Context, requestID string) ([]models.AuditEntry, error) {
	entries, err := s.AuditRepo.ListByRequest(requestID)
	if err != nil {
		return nil, NewFatalError(fmt.Sprintf("failed to load audit trail: %v", err))
	}
	return entries, nil
}

// applyTransition resolves and applies one event under the caller-held lock:
// state moves, the sequence advances, the audit entry lands, and only then is
// the user notified. A replay records its marker and changes nothing.
func (s *DefaultBookingService) applyTransition(ctx context.Context, req *models.BookingRequest, event models.EventKind, payload map[string]string) error {
	from := req.State
	to, err := NextState(from, event)
	if err != nil {
		if err == ErrReplay {
			s.recordReplay(req, event)
			return nil
		}
		return err
	}

	req.State = to
	req.Seq++
	req.UpdatedAt = time.Now()
	if req.Booking != nil && (to == models.StateCancelled || to == models.StateDelivered || to == models.StateInTransit) {
		req.Booking.Status = to
	}
	if err := s.Repo.Update(req); err != nil {
		req.State = from
		req.Seq--
		return NewFatalError(fmt.Sprintf("failed to persist transition %s -> %s: %v", from, to, err))
	}

	s.Audit.Record(models.AuditEntry{
		RequestID: req.ID,
		Kind:      models.AuditKindTransition,
		Event:     event,
		FromState: from,
		ToState:   to,
		Seq:       req.Seq,
		Payload:   payload,
	})
	s.cacheSnapshot(ctx, req)

	title, body := statusCopy(to, req)
	s.notify(ctx, req, title, body)
	return nil
}

func (s *DefaultBookingService) recordReplay(req *models.BookingRequest, event models.EventKind) {
	s.Audit.Record(models.AuditEntry{
		RequestID: req.ID,
		Kind:      models.AuditKindIdempotentReplay,
		Event:     event,
		FromState: req.State,
		ToState:   req.State,
		Seq:       req.Seq,
	})
}

func (s *DefaultBookingService) recordStale(req *models.BookingRequest, reason string) {
	s.Audit.Record(models.AuditEntry{
		RequestID: req.ID,
		Kind:      models.AuditKindStaleEvent,
		FromState: req.State,
		ToState:   req.State,
		Seq:       req.Seq,
		Payload:   map[string]string{"reason": reason},
	})
}

func (s *DefaultBookingService) notify(ctx context.Context, req *models.BookingRequest, title, body string) {
	if s.Notifier == nil {
		return
	}
	msg := models.StatusMessage{
		UserID:    req.UserID,
		RequestID: req.ID,
		State:     req.State,
		Title:     title,
		Body:      body,
	}
	if err := s.Notifier.DispatchStatus(ctx, msg); err != nil {
		s.Logger.Warn("status notification failed",
			zap.String("requestId", req.ID),
			zap.String("state", string(req.State)),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) load(requestID string) (*models.BookingRequest, error) {
	req, err := s.Repo.GetByID(requestID)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("booking request %s not found", requestID))
	}
	return req, nil
}

func snapshotKey(requestID string) string {
	return "request:" + requestID
}

func candidatesKey(requestID string) string {
	return "candidates:" + requestID
}

func (s *DefaultBookingService) cacheSnapshot(ctx context.Context, req *models.BookingRequest) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(req)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, snapshotKey(req.ID), b, snapshotTTL).Err(); err != nil {
		s.Logger.Debug("snapshot cache write failed", zap.String("requestId", req.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) cacheCandidates(ctx context.Context, requestID string, ranked []catalog.RankedCandidate) {
	if s.Cache == nil {
		return
	}
	candidates := make([]models.Candidate, 0, len(ranked))
	for _, rc := range ranked {
		candidates = append(candidates, rc.Candidate)
	}
	b, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, candidatesKey(requestID), b, snapshotTTL).Err(); err != nil {
		s.Logger.Debug("candidate cache write failed", zap.String("requestId", requestID), zap.Error(err))
	}
}

// cachedCandidateIDs returns the most recent offer set for the request. A
// cache miss reports ok=false and the caller must not treat it as empty.
func (s *DefaultBookingService) cachedCandidateIDs(ctx context.Context, requestID string) (map[string]bool, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, candidatesKey(requestID)).Result()
	if err != nil {
		return nil, false
	}
	var candidates []models.Candidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, false
	}
	ids := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		ids[c.ID] = true
	}
	return ids, len(ids) > 0
}

// statusCopy is the user-facing wording per state.
func statusCopy(state models.RequestState, req *models.BookingRequest) (string, string) {
	switch state {
	case models.StateAwaitingSelection:
		return "Trucks found", "We found trucks for your route. Pick one to continue."
	case models.StateCollectingDetails:
		return "Truck selected", "Tell us the consignment details to move ahead."
	case models.StateVerifyingAvailability:
		return "Checking availability", "We are confirming the truck with its operator."
	case models.StateConfirmed:
		ref := ""
		if req.Booking != nil {
			ref = req.Booking.Reference
		}
		return "Booking confirmed", fmt.Sprintf("Your booking %s is confirmed.", ref)
	case models.StateRetrySelection:
		return "Truck unavailable", "That truck fell through. Please pick an alternative."
	case models.StateDocumentsPending:
		return "Documents needed", "Upload the required documents to proceed."
	case models.StateDocumentsVerified:
		return "Documents verified", "All documents cleared. Dispatch is next."
	case models.StateInTransit:
		return "In transit", "Your consignment is on the move."
	case models.StateDelivered:
		return "Delivered", "Your consignment has been delivered."
	case models.StateCancelled:
		return "Booking cancelled", "Your booking request was cancelled."
	case models.StateFailed:
		return "Booking failed", req.FailureReason
	}
	return "Booking update", fmt.Sprintf("Your request is now %s.", state)
}
