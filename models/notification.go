package models

// StatusMessage is one outbound user-facing update, emitted on every state
// transition and on validation failure. Delivery is the transport
// collaborator's problem; the dispatcher only builds and queues these.
type StatusMessage struct {
	UserID    string       `json:"userId"`
	RequestID string       `json:"requestId"`
	State     RequestState `json:"state,omitempty"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
}
