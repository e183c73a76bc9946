// This file defines the public tracking handler. Anyone holding a letter
// number can query the current status and progress timeline of a report
// without authentication. Responses expose only tracking-safe fields.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/repository"
)

// TrackingHandler aggregates the repositories needed for public lookups.
type TrackingHandler struct {
	ReportRepo   *repository.ReportRepo
	TimelineRepo *repository.TimelineRepo
}

func NewTrackingHandler(reports *repository.ReportRepo, timeline *repository.TimelineRepo) *TrackingHandler {
	if reports == nil || timeline == nil {
		panic("nil repository passed to NewTrackingHandler")
	}
	return &TrackingHandler{ReportRepo: reports, TimelineRepo: timeline}
}

// TrackingSnapshot is the public view of a report's workflow state.
type TrackingSnapshot struct {
	LetterNumber  string          `json:"letter_number"`
	Subject       string          `json:"subject"`
	CurrentStatus string          `json:"current_status"`
	StatusLabel   string          `json:"status_label"`
	Timeline      []TimelineEntry `json:"timeline"`
}

// TimelineEntry is one event in the public timeline, ordered ascending by
// timestamp.
type TimelineEntry struct {
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	User        string    `json:"user"`
	Description string    `json:"description"`
}

// Track handles GET /v1/track/:letter_number. The match is exact and
// case-sensitive. A missing letter number is a normal outcome, rendered as
// 404 with an explanatory message, never logged as an error.
func (h *TrackingHandler) Track(c echo.Context) error {
	letterNumber := strings.TrimSpace(c.Param("letter_number"))
	if letterNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "letter_number is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.ReportRepo.GetByLetterNumber(ctx, letterNumber)
	if err != nil {
		if err == repository.ErrReportNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": fmt.Sprintf("no report found for %s", letterNumber),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	events, err := h.TimelineRepo.ListByReport(ctx, rep.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	timeline := make([]TimelineEntry, 0, len(events))
	for _, ev := range events {
		timeline = append(timeline, TimelineEntry{
			Date:        ev.OccurredAt,
			Status:      ev.StatusLabel,
			User:        ev.ActorName,
			Description: ev.Description,
		})
	}

	return c.JSON(http.StatusOK, TrackingSnapshot{
		LetterNumber:  rep.LetterNumber,
		Subject:       rep.Subject,
		CurrentStatus: string(rep.Status),
		StatusLabel:   rep.Status.Label(),
		Timeline:      timeline,
	})
}
