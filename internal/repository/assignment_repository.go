package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/wicaksana/report-tracking/internal/model"
)

// AssignmentRepo provides access to assignments. The checklist is stored as
// a JSON column. Progress updates enforce monotonicity at the SQL level: the
// WHERE clause refuses an update that would move progress backward, so a
// racing stale write affects zero rows instead of regressing state.
type AssignmentRepo struct{ DB *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{DB: db} }

const assignmentColumns = "id, report_id, coordinator_id, staff_id, assigned_at, to_do_list, progress, notes, is_completed, completed_at, closed_at"

// CreateTx inserts an assignment within an existing transaction and
// populates the generated ID and assigned_at on the record.
func (r *AssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Assignment) error {
	todo, err := json.Marshal(a.ToDoList)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (report_id, coordinator_id, staff_id, to_do_list, progress, notes)
		 VALUES (?,?,?,?,?,?)`,
		a.ReportID, a.CoordinatorID, a.StaffID, string(todo), a.Progress, a.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return scanAssignment(tx.QueryRowContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE id = ?", a.ID), a)
}

// GetByID fetches an assignment by id.
func (r *AssignmentRepo) GetByID(ctx context.Context, id uint64) (model.Assignment, error) {
	var a model.Assignment
	err := scanAssignment(r.DB.QueryRowContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE id=? LIMIT 1", id), &a)
	if err == sql.ErrNoRows {
		return a, ErrAssignmentNotFound
	}
	return a, err
}

// GetOpenByReport returns the current assignment for a report: neither
// completed nor closed by a revision. A report has at most one open
// assignment per cycle.
func (r *AssignmentRepo) GetOpenByReport(ctx context.Context, reportID uint64) (model.Assignment, error) {
	var a model.Assignment
	err := scanAssignment(r.DB.QueryRowContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE report_id=? AND is_completed=0 AND closed_at IS NULL ORDER BY assigned_at DESC LIMIT 1",
		reportID), &a)
	if err == sql.ErrNoRows {
		return a, ErrAssignmentNotFound
	}
	return a, err
}

// ListByStaff returns assignments delegated to a staff member, newest first.
func (r *AssignmentRepo) ListByStaff(ctx context.Context, staffID uint64) ([]model.Assignment, error) {
	return r.list(ctx, "staff_id", staffID)
}

// ListByCoordinator returns assignments created by a coordinator, newest first.
func (r *AssignmentRepo) ListByCoordinator(ctx context.Context, coordinatorID uint64) ([]model.Assignment, error) {
	return r.list(ctx, "coordinator_id", coordinatorID)
}

func (r *AssignmentRepo) list(ctx context.Context, column string, userID uint64) ([]model.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE "+column+"=? ORDER BY assigned_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateProgress writes a new progress value, checklist state and notes.
// The WHERE clause rejects completed or closed assignments and backward
// progress.
func (r *AssignmentRepo) UpdateProgress(ctx context.Context, id uint64, progress int, todo []model.TodoItem, notes string) error {
	data, err := json.Marshal(todo)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE assignments SET progress=?, to_do_list=?, notes=? WHERE id=? AND is_completed=0 AND closed_at IS NULL AND progress<=?",
		progress, string(data), notes, id, progress)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// CompleteTx marks an assignment completed within an existing transaction.
// Completion requires progress to already be at 100; a closed assignment
// can never be completed.
func (r *AssignmentRepo) CompleteTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE assignments SET is_completed=1, completed_at=? WHERE id=? AND is_completed=0 AND closed_at IS NULL AND progress=100",
		at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// CloseTx closes the open assignment of a report without completing it.
// Used by the revision transition, which ends the current cycle; the next
// delegation starts a fresh assignment with progress back at zero. Closing
// only sets closed_at: is_completed stays false because the work was never
// finished, whatever progress the cycle reached.
func (r *AssignmentRepo) CloseTx(ctx context.Context, tx *sql.Tx, reportID uint64, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE assignments SET closed_at=? WHERE report_id=? AND is_completed=0 AND closed_at IS NULL",
		at, reportID)
	return err
}

func scanAssignment(row rowScanner, a *model.Assignment) error {
	var (
		staffID     sql.NullInt64
		todoJSON    string
		completedAt sql.NullTime
		closedAt    sql.NullTime
	)
	err := row.Scan(&a.ID, &a.ReportID, &a.CoordinatorID, &staffID, &a.AssignedAt,
		&todoJSON, &a.Progress, &a.Notes, &a.IsCompleted, &completedAt, &closedAt)
	if err != nil {
		return err
	}
	if staffID.Valid {
		v := uint64(staffID.Int64)
		a.StaffID = &v
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		a.ClosedAt = &t
	}
	if todoJSON != "" {
		if err := json.Unmarshal([]byte(todoJSON), &a.ToDoList); err != nil {
			return err
		}
	}
	return nil
}
