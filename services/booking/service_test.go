package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"testing"

	"freightbook/config"
	"freightbook/models"
	"freightbook/services/audit"
	"freightbook/services/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	config.AppConfig.VerifyMaxAttempts = 3
	config.AppConfig.VerifyBackoffMs = 1
	config.AppConfig.MaxRetrySelections = 5
	config.AppConfig.MaxFieldLength = 5000
	config.AppConfig.UserDocumentTypes = "consignment_note,id_proof"
	config.AppConfig.ProviderDocumentTypes = "vehicle_registration,transit_permit"
}

// eventLog records audit appends and notification dispatches in arrival
// order so ordering between the two sinks can be asserted.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(ev string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

type fakeRepo struct {
	mu sync.Mutex
	m  map[string]*models.BookingRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{m: make(map[string]*models.BookingRequest)}
}

func copyRequest(req *models.BookingRequest) *models.BookingRequest {
	b, _ := json.Marshal(req)
	var out models.BookingRequest
	_ = json.Unmarshal(b, &out)
	return &out
}

func (r *fakeRepo) Create(req *models.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[req.ID]; ok {
		return fmt.Errorf("duplicate id %s", req.ID)
	}
	r.m[req.ID] = copyRequest(req)
	return nil
}

func (r *fakeRepo) Update(req *models.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.m[req.ID]
	if !ok {
		return fmt.Errorf("not found: %s", req.ID)
	}
	if stored.Seq > req.Seq {
		return fmt.Errorf("stale write for %s", req.ID)
	}
	r.m[req.ID] = copyRequest(req)
	return nil
}

func (r *fakeRepo) GetByID(id string) (*models.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.m[id]
	if !ok {
		return nil, fmt.Errorf("not found: %s", id)
	}
	return copyRequest(req), nil
}

func (r *fakeRepo) ListByUser(userID string, limit int) ([]models.RequestSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RequestSummary
	for _, req := range r.m {
		if req.UserID == userID {
			out = append(out, models.RequestSummary{
				ID:        req.ID,
				State:     req.State,
				Origin:    req.Route.Origin,
				Dest:      req.Route.Destination,
				CreatedAt: req.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	log     *eventLog
	entries []models.AuditEntry
}

func (r *fakeAuditRepo) Append(entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	if r.log != nil {
		r.log.add("audit:" + entry.Kind + ":" + string(entry.Event))
	}
	return nil
}

func (r *fakeAuditRepo) ListByRequest(requestID string) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditEntry
	for _, e := range r.entries {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) byKind(kind string) []models.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditEntry
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (r *fakeAuditRepo) transitionsTo(state models.RequestState) int {
	n := 0
	for _, e := range r.byKind(models.AuditKindTransition) {
		if e.ToState == state {
			n++
		}
	}
	return n
}

type fakeNotifier struct {
	mu   sync.Mutex
	log  *eventLog
	msgs []models.StatusMessage
}

func (n *fakeNotifier) DispatchStatus(_ context.Context, msg models.StatusMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	if n.log != nil {
		n.log.add("notify:" + string(msg.State))
	}
	return nil
}

type fakeCatalog struct {
	mu      sync.Mutex
	results [][]models.Candidate
	calls   int
}

func (c *fakeCatalog) Search(_ context.Context, _ models.SearchCriteria) ([]models.Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if len(c.results) == 0 {
		return nil, nil
	}
	out := c.results[0]
	if len(c.results) > 1 {
		c.results = c.results[1:]
	}
	return out, nil
}

type verifyStep struct {
	result *VerifyResult
	err    error
}

type fakeVerifier struct {
	mu    sync.Mutex
	steps []verifyStep
	calls int
}

func (v *fakeVerifier) Verify(_ context.Context, _ string, _ models.TripDetails) (*VerifyResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	if len(v.steps) == 0 {
		return &VerifyResult{Confirmed: true, BookingReference: "BK-0000"}, nil
	}
	step := v.steps[0]
	v.steps = v.steps[1:]
	return step.result, step.err
}

type fakeStore struct{}

func (fakeStore) Upload(_ context.Context, docType string, _ []byte) (string, error) {
	return "rec-" + docType, nil
}

type fakeChecker struct {
	rejects map[string]string
}

func (c *fakeChecker) Check(_ context.Context, recordID string) (bool, string, error) {
	if notes, ok := c.rejects[recordID]; ok {
		return false, notes, nil
	}
	return true, "", nil
}

type testHarness struct {
	svc      *DefaultBookingService
	repo     *fakeRepo
	audits   *fakeAuditRepo
	notifier *fakeNotifier
	catalog  *fakeCatalog
	verifier *fakeVerifier
	checker  *fakeChecker
	log      *eventLog
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	log := &eventLog{}
	repo := newFakeRepo()
	audits := &fakeAuditRepo{log: log}
	notifier := &fakeNotifier{log: log}
	cat := &fakeCatalog{}
	ver := &fakeVerifier{}
	checker := &fakeChecker{}
	gate := security.NewDefaultGate(zap.NewNop())

	svc := NewDefaultBookingService(
		repo,
		audits,
		cat,
		ver,
		fakeStore{},
		checker,
		gate,
		audit.NewDefaultLogger(audits, gate, zap.NewNop()),
		notifier,
		nil,
		zap.NewNop(),
	)
	return &testHarness{
		svc: svc, repo: repo, audits: audits, notifier: notifier,
		catalog: cat, verifier: ver, checker: checker, log: log,
	}
}

func bookTripIntent() models.TripIntent {
	return models.TripIntent{
		IntentKind:  models.IntentBookTrip,
		Origin:      "Mumbai",
		Destination: "Delhi",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-03",
		PartyCount:  2,
		Budget:      500,
	}
}

func twoTrucks() []models.Candidate {
	return []models.Candidate{
		{ID: "TRK-001", ProviderName: "Sharma Logistics", Contact: "ops@sharmalog.example", TruckType: "container", CapacityTons: 9, Price: 450, Rating: 4.6, Available: true},
		{ID: "TRK-002", ProviderName: "Verma Freight", Contact: "+91 98765 43210", TruckType: "open", CapacityTons: 7, Price: 380, Rating: 4.1, Available: true},
	}
}

func completeDetails() map[string]string {
	return map[string]string{
		models.FieldConsigner:       "Ravi Kumar",
		models.FieldConsignee:       "Meena Traders",
		models.FieldPickupAddress:   "14 Market Road, Mumbai",
		models.FieldDeliveryAddress: "7 Ring Road, Delhi",
		models.FieldParcelSize:      "2m x 1m x 1m",
		models.FieldParcelWeight:    "500kg",
	}
}

func (h *testHarness) toCollectingDetails(t *testing.T) *models.BookingRequest {
	t.Helper()
	ctx := context.Background()
	h.catalog.results = [][]models.Candidate{twoTrucks()}

	req, candidates, err := h.svc.CreateRequest(ctx, "user-1", bookTripIntent())
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	require.Equal(t, models.StateAwaitingSelection, req.State)

	req, err = h.svc.SelectCandidate(ctx, req.ID, "TRK-001")
	require.NoError(t, err)
	require.Equal(t, models.StateCollectingDetails, req.State)
	return req
}

func TestHappyPathToDocumentsPending(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.verifier.steps = []verifyStep{{result: &VerifyResult{Confirmed: true, BookingReference: "BK-1001"}}}

	req := h.toCollectingDetails(t)

	outcome, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)
	assert.True(t, outcome.Complete)
	assert.Empty(t, outcome.Invalid)
	assert.Equal(t, models.StateDocumentsPending, outcome.State)

	final, err := h.svc.GetStatus(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, final.Booking)
	assert.Equal(t, "BK-1001", final.Booking.Reference)
	assert.Equal(t, "TRK-001", final.Booking.CandidateID)
	require.Len(t, final.Documents, 4)

	// Exactly one confirmation transition, and no retries or replays.
	assert.Equal(t, 1, h.audits.transitionsTo(models.StateConfirmed))
	assert.Empty(t, h.audits.byKind(models.AuditKindRetryAttempt))
	assert.Empty(t, h.audits.byKind(models.AuditKindIdempotentReplay))
}

func TestAuditPrecedesNotificationOnConfirmation(t *testing.T) {
	h := newHarness(t)
	req := h.toCollectingDetails(t)

	_, err := h.svc.SubmitDetails(context.Background(), req.ID, completeDetails())
	require.NoError(t, err)

	events := h.log.all()
	auditIdx, notifyIdx := -1, -1
	for i, ev := range events {
		if ev == "audit:transition:"+string(models.EventVerifyConfirmed) && auditIdx == -1 {
			auditIdx = i
		}
		if ev == "notify:"+string(models.StateConfirmed) && notifyIdx == -1 {
			notifyIdx = i
		}
	}
	require.GreaterOrEqual(t, auditIdx, 0)
	require.GreaterOrEqual(t, notifyIdx, 0)
	assert.Less(t, auditIdx, notifyIdx, "audit entry must land before the notification")
}

func TestVerifyRejectionExcludesCandidateAndAllowsRetry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.verifier.steps = []verifyStep{{result: &VerifyResult{Confirmed: false, Reason: "truck already committed"}}}

	req := h.toCollectingDetails(t)
	h.catalog.results = [][]models.Candidate{twoTrucks()}

	outcome, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)
	assert.Equal(t, models.StateRetrySelection, outcome.State)

	rejected, err := h.svc.GetStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.Contains(t, rejected.ExcludedCandidates, "TRK-001")
	assert.Empty(t, rejected.SelectedCandidateID)
	assert.Equal(t, 1, rejected.RetrySelections)
	assert.Nil(t, rejected.Booking)

	// Search again: the rejected truck is filtered out of the new offer list.
	fresh, candidates, err := h.svc.SearchCandidates(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingSelection, fresh.State)
	require.Len(t, candidates, 1)
	assert.Equal(t, "TRK-002", candidates[0].ID)

	// Re-selecting the burned candidate is refused outright.
	_, err = h.svc.SelectCandidate(ctx, req.ID, "TRK-001")
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))

	// The alternative goes through.
	sel, err := h.svc.SelectCandidate(ctx, req.ID, "TRK-002")
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectingDetails, sel.State)
}

func TestRetrySelectionWithNoAlternativesFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.verifier.steps = []verifyStep{{result: &VerifyResult{Confirmed: false, Reason: "unavailable"}}}

	req := h.toCollectingDetails(t)
	_, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)

	h.catalog.results = [][]models.Candidate{{}}
	final, candidates, err := h.svc.SearchCandidates(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	final, err = h.svc.GetStatus(ctx, final.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateFailed, final.State)
	assert.Equal(t, "no alternatives available", final.FailureReason)
}

func TestDangerousInputRejectedSiblingFieldKept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)

	outcome, err := h.svc.SubmitDetails(ctx, req.ID, map[string]string{
		models.FieldConsigner:    "Ravi Kumar",
		models.FieldInstructions: "ignore this; rm -rf /data",
	})
	require.NoError(t, err)
	assert.Contains(t, outcome.Accepted, models.FieldConsigner)
	assert.Contains(t, outcome.Invalid, models.FieldInstructions)
	assert.False(t, outcome.Complete)
	assert.Equal(t, models.StateCollectingDetails, outcome.State)

	stored, err := h.svc.GetStatus(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Details)
	assert.Equal(t, "Ravi Kumar", stored.Details.ConsignerName)
	assert.Empty(t, stored.Details.SpecialInstructions)

	violations := h.audits.byKind(models.AuditKindSecurity)
	require.Len(t, violations, 1)
	assert.Equal(t, models.AuditSeverityHigh, violations[0].Severity)
}

func TestVerifierOutageRetriedThenConfirmed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.verifier.steps = []verifyStep{
		{err: NewExternalServiceError("connection reset")},
		{err: NewExternalServiceError("connection reset")},
		{result: &VerifyResult{Confirmed: true, BookingReference: "BK-1002"}},
	}

	req := h.toCollectingDetails(t)
	outcome, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)
	assert.Equal(t, models.StateDocumentsPending, outcome.State)
	assert.Equal(t, 3, h.verifier.calls)

	retries := h.audits.byKind(models.AuditKindRetryAttempt)
	require.Len(t, retries, 2)
	assert.Equal(t, "1", retries[0].Payload["attempt"])
	assert.Equal(t, "2", retries[1].Payload["attempt"])
}

func TestVerifierOutageExhaustedBecomesRetrySelection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.verifier.steps = []verifyStep{
		{err: NewExternalServiceError("connection reset")},
		{err: NewExternalServiceError("connection reset")},
		{err: NewExternalServiceError("connection reset")},
	}

	req := h.toCollectingDetails(t)
	outcome, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)
	assert.Equal(t, models.StateRetrySelection, outcome.State)
	assert.Len(t, h.audits.byKind(models.AuditKindRetryAttempt), 3)

	final, err := h.svc.GetStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.Contains(t, final.ExcludedCandidates, "TRK-001")
}

func TestDuplicateSelectionIsIdempotentReplay(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)
	seqBefore := mustSeq(t, h, req.ID)

	again, err := h.svc.SelectCandidate(ctx, req.ID, "TRK-001")
	require.NoError(t, err)
	assert.Equal(t, models.StateCollectingDetails, again.State)
	assert.Equal(t, seqBefore, mustSeq(t, h, req.ID))

	replays := h.audits.byKind(models.AuditKindIdempotentReplay)
	require.Len(t, replays, 1)
	assert.Equal(t, models.EventCandidateSelected, replays[0].Event)
}

func TestDuplicateCancelIsIdempotentReplay(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)

	cancelled, err := h.svc.Cancel(ctx, req.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, cancelled.State)

	again, err := h.svc.Cancel(ctx, req.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, again.State)
	assert.Len(t, h.audits.byKind(models.AuditKindIdempotentReplay), 1)
}

func TestDocumentFlowThroughDelivery(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)
	_, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)

	// A rejected document keeps the request in documents_pending.
	h.checker.rejects = map[string]string{"rec-id_proof": "image unreadable"}
	r, err := h.svc.UploadDocument(ctx, req.ID, "id_proof", models.DocumentSideUser, []byte("blurry scan"))
	require.NoError(t, err)
	assert.Equal(t, models.StateDocumentsPending, r.State)
	rec := findDocument(r.Documents, "id_proof", models.DocumentSideUser)
	require.NotNil(t, rec)
	assert.Equal(t, models.DocumentRejected, rec.VerificationStatus)
	assert.Equal(t, "image unreadable", rec.VerifierNotes)

	// Re-upload clean, then the rest.
	h.checker.rejects = nil
	uploads := []struct {
		docType string
		side    models.DocumentSide
	}{
		{"id_proof", models.DocumentSideUser},
		{"consignment_note", models.DocumentSideUser},
		{"vehicle_registration", models.DocumentSideProvider},
		{"transit_permit", models.DocumentSideProvider},
	}
	for _, u := range uploads {
		r, err = h.svc.UploadDocument(ctx, req.ID, u.docType, u.side, []byte("scan"))
		require.NoError(t, err)
	}
	assert.Equal(t, models.StateDocumentsVerified, r.State)

	r, err = h.svc.StartTransit(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateInTransit, r.State)

	r, err = h.svc.CompleteDelivery(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateDelivered, r.State)
	require.NotNil(t, r.Booking)
	assert.Equal(t, models.StateDelivered, r.Booking.Status)
}

func TestUnknownDocumentTypeRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)
	_, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)

	_, err = h.svc.UploadDocument(ctx, req.ID, "passport", models.DocumentSideUser, []byte("scan"))
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestCancelAfterDeliveryRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)
	_, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)

	for _, u := range []struct {
		docType string
		side    models.DocumentSide
	}{
		{"id_proof", models.DocumentSideUser},
		{"consignment_note", models.DocumentSideUser},
		{"vehicle_registration", models.DocumentSideProvider},
		{"transit_permit", models.DocumentSideProvider},
	} {
		_, err = h.svc.UploadDocument(ctx, req.ID, u.docType, u.side, []byte("scan"))
		require.NoError(t, err)
	}
	_, err = h.svc.StartTransit(ctx, req.ID)
	require.NoError(t, err)
	_, err = h.svc.CompleteDelivery(ctx, req.ID)
	require.NoError(t, err)

	_, err = h.svc.Cancel(ctx, req.ID, "too late")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
}

func TestEmptyInitialSearchStaysSearching(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.catalog.results = [][]models.Candidate{{}}

	req, candidates, err := h.svc.CreateRequest(ctx, "user-1", bookTripIntent())
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, models.StateSearching, req.State)

	// A later search with inventory moves it forward.
	h.catalog.results = [][]models.Candidate{twoTrucks()}
	fresh, candidates, err := h.svc.SearchCandidates(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, models.StateAwaitingSelection, fresh.State)
}

func TestRetryCeilingFailsRequest(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.verifier.steps = []verifyStep{{result: &VerifyResult{Confirmed: false, Reason: "unavailable"}}}

	req := h.toCollectingDetails(t)
	outcome, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)
	require.Equal(t, models.StateRetrySelection, outcome.State)

	// Force the counter past the ceiling, then search.
	stored, err := h.repo.GetByID(req.ID)
	require.NoError(t, err)
	stored.RetrySelections = config.AppConfig.MaxRetrySelections + 1
	require.NoError(t, h.repo.Update(stored))

	final, _, err := h.svc.SearchCandidates(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateFailed, final.State)
	assert.Equal(t, "retry limit reached", final.FailureReason)
}

func TestCreateRequestRejectsBadIntent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	in := bookTripIntent()
	in.IntentKind = models.IntentQueryStatus
	_, _, err := h.svc.CreateRequest(ctx, "user-1", in)
	assert.Equal(t, CodeValidation, ErrorCode(err))

	in = bookTripIntent()
	in.StartDate = "next tuesday"
	_, _, err = h.svc.CreateRequest(ctx, "user-1", in)
	assert.Equal(t, CodeValidation, ErrorCode(err))

	in = bookTripIntent()
	in.EndDate = "2026-08-30"
	_, _, err = h.svc.CreateRequest(ctx, "user-1", in)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestAuditPayloadsAreMasked(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.toCollectingDetails(t)

	// The rejection reason carries a contact that must not reach the sink raw.
	h.verifier.steps = []verifyStep{{result: &VerifyResult{Confirmed: false, Reason: "call ops@sharmalog.example"}}}
	_, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
	require.NoError(t, err)

	entries, err := h.svc.AuditTrail(ctx, req.ID)
	require.NoError(t, err)
	found := false
	for _, e := range entries {
		if e.Event == models.EventVerifyRejected {
			found = true
			assert.NotContains(t, e.Payload["reason"], "ops@sharmalog.example")
		}
	}
	assert.True(t, found)
}

func TestHistoryListsUserRequests(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.catalog.results = [][]models.Candidate{twoTrucks()}

	r1, _, err := h.svc.CreateRequest(ctx, "user-1", bookTripIntent())
	require.NoError(t, err)
	_, _, err = h.svc.CreateRequest(ctx, "user-2", bookTripIntent())
	require.NoError(t, err)

	got, err := h.svc.History(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r1.ID, got[0].ID)
}

// blockingVerifier parks Verify until released so a concurrent transition
// can land while verification is in flight.
type blockingVerifier struct {
	started chan struct{}
	release chan struct{}
	result  *VerifyResult
}

func (v *blockingVerifier) Verify(_ context.Context, _ string, _ models.TripDetails) (*VerifyResult, error) {
	close(v.started)
	<-v.release
	return v.result, nil
}

func TestCancelDuringVerificationDiscardsLateConfirmation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	bv := &blockingVerifier{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  &VerifyResult{Confirmed: true, BookingReference: "BK-1003"},
	}
	h.svc.Verifier = bv

	req := h.toCollectingDetails(t)

	type submitResult struct {
		outcome *DetailOutcome
		err     error
	}
	done := make(chan submitResult, 1)
	go func() {
		outcome, err := h.svc.SubmitDetails(ctx, req.ID, completeDetails())
		done <- submitResult{outcome, err}
	}()

	// The user cancels while the verifier is still holding the request.
	<-bv.started
	cancelled, err := h.svc.Cancel(ctx, req.ID, "user aborted")
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, cancelled.State)

	close(bv.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, models.StateCancelled, res.outcome.State)

	// The late confirmation was discarded: no booking, no confirmed
	// transition, one stale-event marker.
	final, err := h.svc.GetStatus(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, final.State)
	assert.Nil(t, final.Booking)
	assert.Equal(t, 0, h.audits.transitionsTo(models.StateConfirmed))
	assert.Len(t, h.audits.byKind(models.AuditKindStaleEvent), 1)
}

func mustSeq(t *testing.T, h *testHarness, id string) int64 {
	t.Helper()
	req, err := h.repo.GetByID(id)
	require.NoError(t, err)
	return req.Seq
}
