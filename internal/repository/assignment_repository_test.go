package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wicaksana/report-tracking/internal/model"
)

var assignmentRows = []string{
	"id", "report_id", "coordinator_id", "staff_id", "assigned_at",
	"to_do_list", "progress", "notes", "is_completed", "completed_at", "closed_at",
}

func TestAssignmentGetByIDScansChecklist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	assigned := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM assignments WHERE id=.*").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(assignmentRows).AddRow(
			7, 1, 4, 5, assigned,
			`[{"task":"Review documentation","done":true},{"task":"Verify compliance","done":false}]`,
			40, "halfway through review", false, nil, nil))

	repo := NewAssignmentRepo(db)
	a, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if a.StaffID == nil || *a.StaffID != 5 {
		t.Fatalf("staff id not scanned: %v", a.StaffID)
	}
	if len(a.ToDoList) != 2 || !a.ToDoList[0].Done || a.ToDoList[1].Done {
		t.Fatalf("checklist not decoded: %+v", a.ToDoList)
	}
	if a.CompletedAt != nil {
		t.Fatalf("open assignment should have nil completed_at")
	}
}

func TestAssignmentGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM assignments WHERE id=.*").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(assignmentRows))

	repo := NewAssignmentRepo(db)
	if _, err := repo.GetByID(context.Background(), 99); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestUpdateProgressForward(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	todo := []model.TodoItem{{Task: "Review documentation", Done: true}}
	mock.ExpectExec("UPDATE assignments SET progress=., to_do_list=., notes=. WHERE id=. AND is_completed=0 AND closed_at IS NULL AND progress<=.").
		WithArgs(60, `[{"task":"Review documentation","done":true}]`, "notes", uint64(7), 60).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewAssignmentRepo(db)
	if err := repo.UpdateProgress(context.Background(), 7, 60, todo, "notes"); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A stale write that would move progress backward matches zero rows because
// of the progress<=? guard and surfaces as ErrConflict.
func TestUpdateProgressBackwardRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE assignments SET progress=., to_do_list=., notes=. WHERE id=. AND is_completed=0 AND closed_at IS NULL AND progress<=.").
		WithArgs(30, sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(7), 30).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAssignmentRepo(db)
	err = repo.UpdateProgress(context.Background(), 7, 30, nil, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCompleteTxRequiresFullProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE assignments SET is_completed=1, completed_at=. WHERE id=. AND is_completed=0 AND closed_at IS NULL AND progress=100").
		WithArgs(sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewAssignmentRepo(db)
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	err = repo.CompleteTx(context.Background(), tx, 7, time.Now().UTC())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	_ = tx.Rollback()
}

// Ending a cycle for revision must only stamp closed_at. The assignment was
// never finished, so is_completed and completed_at stay untouched even when
// progress is partway along.
func TestCloseTxLeavesCompletionAlone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE assignments SET closed_at=. WHERE report_id=. AND is_completed=0 AND closed_at IS NULL").
		WithArgs(sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewAssignmentRepo(db)
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if err := repo.CloseTx(context.Background(), tx, 1, time.Now().UTC()); err != nil {
		t.Fatalf("CloseTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
