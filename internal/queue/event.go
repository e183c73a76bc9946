// Package queue defines message payloads exchanged over the message broker.
package queue

// ReportStatusChangedEvent is published on every workflow transition,
// including report creation. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReportStatusChangedEvent struct {
	ReportID     uint64 `json:"report_id"`
	LetterNumber string `json:"letter_number"`
	Subject      string `json:"subject"`
	FromStatus   string `json:"from_status,omitempty"`
	ToStatus     string `json:"to_status"`
	StatusLabel  string `json:"status_label"`
	ActorID      uint64 `json:"actor_id"`
	ActorName    string `json:"actor_name"`
	Description  string `json:"description"`
	OccurredAt   string `json:"occurred_at"`
}
