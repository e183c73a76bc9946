package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wicaksana/report-tracking/internal/model"
)

func TestAppendTxRecordsEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO timeline_events").
		WithArgs(uint64(1), "forwarded", "Forwarded to Coordinator", uint64(3), "Siti (TU)", "Report forwarded to Suwarti, S.h for review", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	repo := NewTimelineRepo(db)
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	ev := model.TimelineEvent{
		ReportID:    1,
		Status:      "forwarded",
		StatusLabel: "Forwarded to Coordinator",
		ActorID:     3,
		ActorName:   "Siti (TU)",
		Description: "Report forwarded to Suwarti, S.h for review",
		OccurredAt:  time.Now().UTC(),
	}
	if err := repo.AppendTx(context.Background(), tx, &ev); err != nil {
		t.Fatalf("AppendTx: %v", err)
	}
	if ev.ID != 11 {
		t.Fatalf("generated id not set: %d", ev.ID)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Display order comes from occurred_at, not insertion order. The query must
// sort ascending with id as tiebreaker.
func TestListByReportOrdersByTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	base := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "report_id", "status", "status_label", "actor_id", "actor_name", "description", "occurred_at"}).
		AddRow(1, 1, "created", "Created by TU", 3, "Siti (TU)", "Report created and initial documents uploaded", base).
		AddRow(2, 1, "forwarded", "Forwarded to Coordinator", 3, "Siti (TU)", "Report forwarded to Suwarti, S.h for review", base.Add(time.Hour))
	mock.ExpectQuery("SELECT .* FROM timeline_events WHERE report_id=. ORDER BY occurred_at ASC, id ASC").
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	repo := NewTimelineRepo(db)
	out, err := repo.ListByReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByReport: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out))
	}
	if out[0].Status != "created" || out[1].Status != "forwarded" {
		t.Fatalf("events out of order: %s, %s", out[0].Status, out[1].Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
