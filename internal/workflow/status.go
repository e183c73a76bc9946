// Package workflow defines the report approval chain: the closed set of
// report statuses, the legal transitions between them and the rules for
// assignment progress. Repositories and handlers validate every status
// change against this package before touching the database.
package workflow

import (
	"errors"
	"fmt"
)

// Status is the state of a report inside the approval chain. The set is
// closed; unknown strings are rejected at the ingestion boundary instead of
// being stored or rendered as-is.
type Status string

const (
	StatusCreated        Status = "created"         // report registered by TU
	StatusForwarded      Status = "forwarded"       // handed to a coordinator
	StatusInVerification Status = "in_verification" // coordinator checking documents
	StatusInProgress     Status = "in_progress"     // delegated to staff, work ongoing
	StatusCompleted      Status = "completed"       // terminal
	StatusRevision       Status = "revision"        // sent back for rework
)

// ErrInvalidTransition is returned when a requested status change does not
// match any legal edge. The report must not be mutated in that case.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnknownStatus is returned by ParseStatus for values outside the closed set.
var ErrUnknownStatus = errors.New("unknown report status")

// transitions holds the legal edges. completed has no outgoing edges and the
// only way out of revision is back into verification.
var transitions = map[Status][]Status{
	StatusCreated:        {StatusForwarded},
	StatusForwarded:      {StatusInVerification},
	StatusInVerification: {StatusInProgress},
	StatusInProgress:     {StatusCompleted, StatusRevision},
	StatusRevision:       {StatusInVerification},
	StatusCompleted:      {},
}

// labels are the human-readable forms shown on badges and in the public
// tracking timeline.
var labels = map[Status]string{
	StatusCreated:        "Created by TU",
	StatusForwarded:      "Forwarded to Coordinator",
	StatusInVerification: "In Document Verification",
	StatusInProgress:     "In Progress",
	StatusCompleted:      "Completed",
	StatusRevision:       "Needs Revision",
}

// ParseStatus validates a raw string against the closed status set.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Label returns the display label for s, or the raw value when s is not a
// defined status (callers should have rejected those already).
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new status. It never
// mutates anything; callers apply the result together with exactly one
// timeline event in the same database transaction.
func Transition(from, to Status) (Status, error) {
	if !from.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// Initial returns the status assigned to a report at creation time.
func Initial() Status { return StatusCreated }
