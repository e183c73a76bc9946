package model

import "time"

// TimelineEvent is one entry in the append-only history of a report. Exactly
// one event is written per status transition (plus the implicit creation
// event), in the same database transaction as the status update. The public
// tracking timeline is read from these rows ordered by OccurredAt; it is
// never reconstructed by diffing current state.
//
// Fields:
//  ID          – primary key identifier.
//  ReportID    – report the event belongs to (reports.id).
//  Status      – workflow status entered by this event (raw enum value).
//  StatusLabel – human-readable label shown in the timeline.
//  ActorID     – user who triggered the transition (users.id).
//  ActorName   – display name captured at write time, e.g. "John Doe (TU)".
//  Description – human-readable description of what happened.
//  OccurredAt  – when the transition happened.
type TimelineEvent struct {
	ID          uint64    // timeline_events.id
	ReportID    uint64    // timeline_events.report_id
	Status      string    // timeline_events.status
	StatusLabel string    // timeline_events.status_label
	ActorID     uint64    // timeline_events.actor_id
	ActorName   string    // timeline_events.actor_name
	Description string    // timeline_events.description
	OccurredAt  time.Time // timeline_events.occurred_at
}
