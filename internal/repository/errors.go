// Package repository implements the data access layer over MySQL. This file
// defines sentinel error values shared across repositories so that handlers
// can map failure scenarios onto HTTP responses: not-found values become 404,
// ErrForbidden 403, ErrConflict 409 and so on.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, e.g. a staff member updating someone else's
// assignment.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as a status transition losing a race with a
// concurrent one.
var ErrConflict = errors.New("conflict")

// ErrUserIDExists is returned when creating a user with a login identifier
// that is already taken.
var ErrUserIDExists = errors.New("user_id already exists")

// ErrLetterNumberExists is returned when registering a report under a letter
// number that is already assigned. Letter numbers are globally unique and
// immutable.
var ErrLetterNumberExists = errors.New("letter number already exists")

// ErrReportNotFound is returned when a report lookup matches no row.
var ErrReportNotFound = errors.New("report not found")

// ErrAssignmentNotFound is returned when an assignment lookup matches no row.
var ErrAssignmentNotFound = errors.New("assignment not found")
