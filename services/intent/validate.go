package intent

import (
	"fmt"
	"time"

	"freightbook/models"
)

var knownKinds = map[string]bool{
	models.IntentBookTrip:    true,
	models.IntentQueryStatus: true,
	models.IntentCancelTrip:  true,
}

// ValidateIntent rejects structured intents the engine cannot act on: an
// unknown kind, or a booking intent missing route or date fields.
func ValidateIntent(intent *models.TripIntent) error {
	if intent == nil {
		return fmt.Errorf("intent is nil")
	}
	if !knownKinds[intent.IntentKind] {
		return fmt.Errorf("unknown intent kind %q", intent.IntentKind)
	}
	if intent.IntentKind != models.IntentBookTrip {
		return nil
	}
	if intent.Origin == "" {
		return fmt.Errorf("booking intent is missing origin")
	}
	if intent.Destination == "" {
		return fmt.Errorf("booking intent is missing destination")
	}
	for name, d := range map[string]string{"start_date": intent.StartDate, "end_date": intent.EndDate} {
		if d == "" {
			return fmt.Errorf("booking intent is missing %s", name)
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%s must be YYYY-MM-DD", name)
		}
	}
	if intent.PartyCount < 0 {
		return fmt.Errorf("party_count cannot be negative")
	}
	if intent.Budget < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}
