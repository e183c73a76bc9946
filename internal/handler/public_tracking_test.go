package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/repository"
)

func newTrackingHandler(t *testing.T) (*TrackingHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := NewTrackingHandler(repository.NewReportRepo(db), repository.NewTimelineRepo(db))
	return h, mock, func() { db.Close() }
}

func trackRequest(e *echo.Echo, letterNumber string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/track/"+letterNumber, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/track/:letter_number")
	c.SetParamNames("letter_number")
	c.SetParamValues(letterNumber)
	return c, rec
}

var trackingReportRows = []string{
	"id", "letter_number", "subject", "status", "service_type",
	"disposition_nature", "disposition_degree", "disposition_agenda_no",
	"disposition_originating_group", "disposition_sestama_agenda",
	"disposition_letter_no", "disposition_from", "disposition_agenda_date",
	"disposition_letter_date", "created_by", "created_at", "updated_at",
}

func TestTrackReturnsSnapshotWithTimeline(t *testing.T) {
	h, mock, closeDB := newTrackingHandler(t)
	defer closeDB()

	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM reports WHERE BINARY letter_number=.").
		WithArgs("RPT001").
		WillReturnRows(sqlmock.NewRows(trackingReportRows).AddRow(
			1, "RPT001", "Road repair request", "in_progress", "Administrative Services",
			"Urgent", "Priority", "AG-42", "Secretariat", "SA-7",
			"LTR-9", "District Office", "2025-01-10", "2025-01-08", 3, now, now))
	mock.ExpectQuery("SELECT .* FROM timeline_events WHERE report_id=. ORDER BY occurred_at ASC, id ASC").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_id", "status", "status_label", "actor_id", "actor_name", "description", "occurred_at"}).
			AddRow(1, 1, "created", "Created by TU", 3, "Siti (TU)", "Report created and initial documents uploaded", now).
			AddRow(2, 1, "forwarded", "Forwarded to Coordinator", 3, "Siti (TU)", "Report forwarded to Suwarti, S.h for review", now.Add(time.Hour)))

	e := echo.New()
	c, rec := trackRequest(e, "RPT001")
	if err := h.Track(c); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var snap TrackingSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.LetterNumber != "RPT001" || snap.CurrentStatus != "in_progress" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.StatusLabel != "In Progress" {
		t.Fatalf("unexpected status label: %s", snap.StatusLabel)
	}
	if len(snap.Timeline) != 2 || snap.Timeline[0].Status != "Created by TU" {
		t.Fatalf("unexpected timeline: %+v", snap.Timeline)
	}
	if !snap.Timeline[0].Date.Before(snap.Timeline[1].Date) {
		t.Fatal("timeline not ascending by timestamp")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A miss is a normal outcome: 404 with a message naming the requested key.
func TestTrackUnknownLetterNumber(t *testing.T) {
	h, mock, closeDB := newTrackingHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .* FROM reports WHERE BINARY letter_number=.").
		WithArgs("DOES-NOT-EXIST").
		WillReturnRows(sqlmock.NewRows(trackingReportRows))

	e := echo.New()
	c, rec := trackRequest(e, "DOES-NOT-EXIST")
	if err := h.Track(c); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no report found for DOES-NOT-EXIST") {
		t.Fatalf("missing explanatory message: %s", rec.Body.String())
	}
}
