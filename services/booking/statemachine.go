package booking

import (
	"fmt"

	"freightbook/models"
)

// transitions maps each trigger event to the single state it is permitted
// in and the state it produces. Cancellation and failure are handled apart
// since they are accepted from any non-terminal state.
var transitions = map[models.EventKind]map[models.RequestState]models.RequestState{
	models.EventCandidatesFound:    {models.StateSearching: models.StateAwaitingSelection},
	models.EventRetrySearch:        {models.StateRetrySelection: models.StateAwaitingSelection},
	models.EventCandidateSelected:  {models.StateAwaitingSelection: models.StateCollectingDetails},
	models.EventDetailsComplete:    {models.StateCollectingDetails: models.StateVerifyingAvailability},
	models.EventVerifyConfirmed:    {models.StateVerifyingAvailability: models.StateConfirmed},
	models.EventVerifyRejected:     {models.StateVerifyingAvailability: models.StateRetrySelection},
	models.EventDocumentsRequested: {models.StateConfirmed: models.StateDocumentsPending},
	models.EventDocumentsVerified:  {models.StateDocumentsPending: models.StateDocumentsVerified},
	models.EventTransitStarted:     {models.StateDocumentsVerified: models.StateInTransit},
	models.EventDelivered:          {models.StateInTransit: models.StateDelivered},
}

// NextState resolves the transition for event in state from.
//
// It returns ErrReplay when the request already sits in the event's target
// state, so a duplicate delivery of an applied event is a no-op rather than
// an error. Any other mismatch is an invalid transition.
func NextState(from models.RequestState, event models.EventKind) (models.RequestState, error) {
	switch event {
	case models.EventCancelled:
		if from == models.StateCancelled {
			return from, ErrReplay
		}
		if from.Terminal() {
			return from, NewInvalidTransition(fmt.Sprintf("cannot cancel a request in terminal state %q", from))
		}
		return models.StateCancelled, nil
	case models.EventFailed:
		if from == models.StateFailed {
			return from, ErrReplay
		}
		if from.Terminal() {
			return from, NewInvalidTransition(fmt.Sprintf("cannot fail a request in terminal state %q", from))
		}
		return models.StateFailed, nil
	}

	allowed, ok := transitions[event]
	if !ok {
		return from, NewInvalidTransition(fmt.Sprintf("unknown event %q", event))
	}
	if to, ok := allowed[from]; ok {
		return to, nil
	}
	// A duplicate of an already-applied event lands here with the request
	// sitting in the event's target state.
	for _, to := range allowed {
		if to == from {
			return from, ErrReplay
		}
	}
	return from, NewInvalidTransition(fmt.Sprintf("event %q is not permitted in state %q", event, from))
}

// EventPermitted reports whether event could fire from state right now.
func EventPermitted(from models.RequestState, event models.EventKind) bool {
	_, err := NextState(from, event)
	return err == nil
}
