package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/repository"
	"github.com/wicaksana/report-tracking/internal/utils"
)

func newTUHandler(t *testing.T) (*TUHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := NewTUHandler(repository.NewUserRepo(db), repository.NewReportRepo(db),
		repository.NewTimelineRepo(db), repository.NewDocumentRepo(db))
	return h, mock, func() { db.Close() }
}

func tuUserRow(t *testing.T) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword("pw", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(userRows).AddRow(3, "Siti", "siti.tu", hash, "tu", true, now, now)
}

func tuReportRow(status string) *sqlmock.Rows {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(trackingReportRows).AddRow(
		1, "RPT001", "Road repair request", status, "Administrative Services",
		"", "", "", "", "", "", "", "", "", 3, now, now)
}

func forwardContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/tu/reports/1/forward", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/tu/reports/:id/forward")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", uint64(3))
	c.Set("role", "tu")
	return c, rec
}

// Forwarding applies the status swap and the timeline append in one
// transaction: the commit only happens after both succeed.
func TestForwardReportAtomic(t *testing.T) {
	h, mock, closeDB := newTUHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .* FROM users WHERE id=.").
		WithArgs(uint64(3)).
		WillReturnRows(tuUserRow(t))
	mock.ExpectQuery("SELECT .* FROM reports WHERE id=.").
		WithArgs(uint64(1)).
		WillReturnRows(tuReportRow("created"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reports SET status=. WHERE id=. AND status=.").
		WithArgs("forwarded", uint64(1), "created").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO timeline_events").
		WithArgs(uint64(1), "forwarded", "Forwarded to Coordinator", uint64(3), "Siti (TU)",
			"Report forwarded to Suwarti, S.h for review", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	e := echo.New()
	c, rec := forwardContext(e, `{"coordinator":"Suwarti, S.h"}`)
	if err := h.ForwardReport(c); err != nil {
		t.Fatalf("ForwardReport: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// The coordinator must come from the roster. A free-text name is rejected
// before the report is even read.
func TestForwardReportUnknownCoordinator(t *testing.T) {
	h, mock, closeDB := newTUHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .* FROM users WHERE id=.").
		WithArgs(uint64(3)).
		WillReturnRows(tuUserRow(t))

	e := echo.New()
	c, rec := forwardContext(e, `{"coordinator":"Nobody In Particular"}`)
	if err := h.ForwardReport(c); err != nil {
		t.Fatalf("ForwardReport: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries for rejected coordinator: %v", err)
	}
}

// An illegal edge is rejected before any write: no transaction is opened.
func TestForwardReportIllegalTransition(t *testing.T) {
	h, mock, closeDB := newTUHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .* FROM users WHERE id=.").
		WithArgs(uint64(3)).
		WillReturnRows(tuUserRow(t))
	mock.ExpectQuery("SELECT .* FROM reports WHERE id=.").
		WithArgs(uint64(1)).
		WillReturnRows(tuReportRow("completed"))

	e := echo.New()
	c, rec := forwardContext(e, `{"coordinator":"Suwarti, S.h"}`)
	if err := h.ForwardReport(c); err != nil {
		t.Fatalf("ForwardReport: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected writes after illegal transition: %v", err)
	}
}

// Another TU user's report cannot be forwarded.
func TestForwardReportOwnershipEnforced(t *testing.T) {
	h, mock, closeDB := newTUHandler(t)
	defer closeDB()

	hash, err := utils.HashPassword("pw", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM users WHERE id=.").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(userRows).AddRow(9, "Budi", "budi.tu", hash, "tu", true, now, now))
	mock.ExpectQuery("SELECT .* FROM reports WHERE id=.").
		WithArgs(uint64(1)).
		WillReturnRows(tuReportRow("created"))

	e := echo.New()
	c, rec := forwardContext(e, `{"coordinator":"Suwarti, S.h"}`)
	c.Set("user_id", uint64(9))
	if err := h.ForwardReport(c); err != nil {
		t.Fatalf("ForwardReport: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
