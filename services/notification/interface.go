package notification

import (
	"context"

	"freightbook/models"
)

// Dispatcher queues a user-facing status update. Delivery failure must never
// fail the transition that produced the message; the orchestrator logs and
// moves on when Dispatch errors.
type Dispatcher interface {
	DispatchStatus(ctx context.Context, msg models.StatusMessage) error
}

// Sender performs the final push delivery of a queued status message.
type Sender interface {
	Send(ctx context.Context, msg models.StatusMessage) error
}
