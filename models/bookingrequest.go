package models

import "time"

// RequestState is the lifecycle state of a BookingRequest.
type RequestState string

const (
	StateSearching             RequestState = "searching"
	StateAwaitingSelection     RequestState = "awaiting_selection"
	StateCollectingDetails     RequestState = "collecting_details"
	StateVerifyingAvailability RequestState = "verifying_availability"
	StateConfirmed             RequestState = "confirmed"
	StateRetrySelection        RequestState = "retry_selection"
	StateDocumentsPending      RequestState = "documents_pending"
	StateDocumentsVerified     RequestState = "documents_verified"
	StateInTransit             RequestState = "in_transit"
	StateDelivered             RequestState = "delivered"
	StateCancelled             RequestState = "cancelled"
	StateFailed                RequestState = "failed"
)

// Terminal reports whether no further transitions are permitted from s.
func (s RequestState) Terminal() bool {
	return s == StateDelivered || s == StateCancelled || s == StateFailed
}

// EventKind is the single external trigger behind one state transition.
type EventKind string

const (
	EventCandidatesFound    EventKind = "candidates_found"
	EventCandidateSelected  EventKind = "candidate_selected"
	EventDetailsComplete    EventKind = "details_complete"
	EventVerifyConfirmed    EventKind = "verify_confirmed"
	EventVerifyRejected     EventKind = "verify_rejected"
	EventRetrySearch        EventKind = "retry_search"
	EventDocumentsRequested EventKind = "documents_requested"
	EventDocumentsVerified  EventKind = "documents_verified"
	EventTransitStarted     EventKind = "transit_started"
	EventDelivered          EventKind = "delivered"
	EventCancelled          EventKind = "cancelled"
	EventFailed             EventKind = "failed"
)

// RouteCriteria is the route portion of a booking request.
type RouteCriteria struct {
	Origin      string    `json:"origin" bson:"origin"`
	Destination string    `json:"destination" bson:"destination"`
	WindowStart time.Time `json:"windowStart" bson:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd" bson:"windowEnd"`
	PartyCount  int       `json:"partyCount" bson:"partyCount"`
}

// BookingRequest is the aggregate owned by the state machine for the whole
// lifecycle of one fulfillment request. The Seq field counts applied
// transitions; duplicate events carrying a stale sequence are replays.
type BookingRequest struct {
	ID                  string           `json:"id" bson:"id"`
	UserID              string           `json:"userId" bson:"userId"`
	Route               RouteCriteria    `json:"route" bson:"route"`
	BudgetLimit         float64          `json:"budgetLimit,omitempty" bson:"budgetLimit,omitempty"`
	State               RequestState     `json:"state" bson:"state"`
	Seq                 int64            `json:"seq" bson:"seq"`
	SelectedCandidateID string           `json:"selectedCandidateId,omitempty" bson:"selectedCandidateId,omitempty"`
	ExcludedCandidates  []string         `json:"excludedCandidates" bson:"excludedCandidates"`
	RetrySelections     int              `json:"retrySelections" bson:"retrySelections"`
	Details             *TripDetails     `json:"details,omitempty" bson:"details,omitempty"`
	Booking             *Booking         `json:"booking,omitempty" bson:"booking,omitempty"`
	Documents           []DocumentRecord `json:"documents,omitempty" bson:"documents,omitempty"`
	FailureReason       string           `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	CreatedAt           time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Excluded reports whether the candidate has already been rejected for this request.
func (r *BookingRequest) Excluded(candidateID string) bool {
	for _, id := range r.ExcludedCandidates {
		if id == candidateID {
			return true
		}
	}
	return false
}

// Booking exists only after the availability verifier confirms a candidate.
// The reference and candidate never change afterwards; only Status moves.
type Booking struct {
	Reference   string       `json:"reference" bson:"reference"`
	CandidateID string       `json:"candidateId" bson:"candidateId"`
	Status      RequestState `json:"status" bson:"status"`
	ConfirmedAt time.Time    `json:"confirmedAt" bson:"confirmedAt"`
}

// RequestSummary is the per-user history projection.
type RequestSummary struct {
	ID        string       `json:"id" bson:"id"`
	State     RequestState `json:"state" bson:"state"`
	Origin    string       `json:"origin" bson:"origin"`
	Dest      string       `json:"destination" bson:"destination"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}
