package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/queue"
	"github.com/wicaksana/report-tracking/internal/repository"
	queue_publisher "github.com/wicaksana/report-tracking/internal/service/queue_publisher"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// applyTransition performs one workflow transition atomically: it validates
// the edge, compare-and-swaps the report status and appends exactly one
// timeline event, all in a single database transaction. Nothing is mutated
// when the edge is illegal. The broker event is published only after commit.
func applyTransition(ctx context.Context, db *sql.DB, reports *repository.ReportRepo, timeline *repository.TimelineRepo,
	rep model.Report, to workflow.Status, actor model.User, description string) (model.TimelineEvent, error) {

	next, err := workflow.Transition(rep.Status, to)
	if err != nil {
		return model.TimelineEvent{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.TimelineEvent{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := reports.UpdateStatusTx(ctx, tx, rep.ID, rep.Status, next); err != nil {
		return model.TimelineEvent{}, err
	}

	ev := model.TimelineEvent{
		ReportID:    rep.ID,
		Status:      string(next),
		StatusLabel: next.Label(),
		ActorID:     actor.ID,
		ActorName:   actorName(actor),
		Description: description,
		OccurredAt:  time.Now().UTC(),
	}
	if err := timeline.AppendTx(ctx, tx, &ev); err != nil {
		return model.TimelineEvent{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.TimelineEvent{}, err
	}

	publishStatusEvent(rep, string(rep.Status), ev)
	return ev, nil
}

// transitionError maps transition failures onto HTTP responses. An illegal
// edge is the caller's mistake (422); losing a status race is a conflict.
func transitionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrUnknownStatus):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "report status changed concurrently"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
	}
}

// publishStatusEvent sends the transition to the message broker. Failures
// are already logged by the publisher and deliberately ignored: the
// transition has committed and the request must not fail because the broker
// is down.
func publishStatusEvent(rep model.Report, from string, ev model.TimelineEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	_ = queue_publisher.PublishReportStatusChanged(ctx, queue.ReportStatusChangedEvent{
		ReportID:     rep.ID,
		LetterNumber: rep.LetterNumber,
		Subject:      rep.Subject,
		FromStatus:   from,
		ToStatus:     ev.Status,
		StatusLabel:  ev.StatusLabel,
		ActorID:      ev.ActorID,
		ActorName:    ev.ActorName,
		Description:  ev.Description,
		OccurredAt:   ev.OccurredAt.Format(time.RFC3339),
	})
}
