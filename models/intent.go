package models

// Intent kinds the orchestrator understands.
const (
	IntentBookTrip    = "book_trip"
	IntentQueryStatus = "query_status"
	IntentCancelTrip  = "cancel_trip"
)

// TripIntent is the structured object handed over by the language
// understanding collaborator. Validated at the boundary; unknown kinds or
// missing route/date fields are rejected before the state machine sees them.
type TripIntent struct {
	IntentKind     string            `json:"intent_kind"`
	Origin         string            `json:"origin"`
	Destination    string            `json:"destination"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	PartyCount     int               `json:"party_count"`
	Budget         float64           `json:"budget"`
	FreeTextFields map[string]string `json:"free_text_fields,omitempty"`
}
