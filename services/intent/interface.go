package intent

import (
	"context"

	"freightbook/models"
)

// Extractor turns a free-text trip request into a structured intent. The
// engine never trusts the output; ValidateIntent runs on it regardless of
// which extractor produced it.
type Extractor interface {
	Extract(ctx context.Context, message string) (*models.TripIntent, error)
}
