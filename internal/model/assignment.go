package model

import "time"

// Assignment is the unit of delegated work tied to a report. It is created
// when a coordinator delegates a verified report; staff then update progress
// until completion. A revision transition closes the current assignment and
// a fresh one starts the next cycle, which is the only way progress resets.
//
// Fields:
//  ID            – primary key identifier.
//  ReportID      – report being worked (reports.id).
//  CoordinatorID – delegating coordinator (users.id).
//  StaffID       – assigned staff member; nil until delegation.
//  AssignedAt    – when the assignment was created.
//  ToDoList      – ordered checklist (stored as a JSON column).
//  Progress      – integer percentage 0–100, monotonically non-decreasing.
//  Notes         – free-text progress notes.
//  IsCompleted   – true only when Progress is 100 and every item is done.
//  CompletedAt   – set together with IsCompleted (null otherwise).
//  ClosedAt      – set when a revision ends the cycle early; such an
//                  assignment is neither open nor completed.
type Assignment struct {
	ID            uint64     // assignments.id
	ReportID      uint64     // assignments.report_id
	CoordinatorID uint64     // assignments.coordinator_id
	StaffID       *uint64    // assignments.staff_id (nullable)
	AssignedAt    time.Time  // assignments.assigned_at
	ToDoList      []TodoItem // assignments.to_do_list (JSON)
	Progress      int        // assignments.progress
	Notes         string     // assignments.notes
	IsCompleted   bool       // assignments.is_completed
	CompletedAt   *time.Time // assignments.completed_at (nullable)
	ClosedAt      *time.Time // assignments.closed_at (nullable)
}

// Open reports whether the assignment still accepts staff updates: not
// completed and not closed by a revision.
func (a Assignment) Open() bool {
	return !a.IsCompleted && a.ClosedAt == nil
}

// TodoItem is a single checklist entry on an assignment.
type TodoItem struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// DoneCount returns how many checklist items are checked off.
func DoneCount(items []TodoItem) int {
	n := 0
	for _, it := range items {
		if it.Done {
			n++
		}
	}
	return n
}
