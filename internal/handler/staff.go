package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/repository"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// StaffHandler serves the staff surface: listing delegated assignments,
// reporting progress and completing the work.
type StaffHandler struct {
	Users       *repository.UserRepo
	Reports     *repository.ReportRepo
	Timeline    *repository.TimelineRepo
	Assignments *repository.AssignmentRepo
}

func NewStaffHandler(users *repository.UserRepo, reports *repository.ReportRepo, timeline *repository.TimelineRepo, assignments *repository.AssignmentRepo) *StaffHandler {
	if users == nil || reports == nil || timeline == nil || assignments == nil {
		panic("nil repository passed to NewStaffHandler")
	}
	return &StaffHandler{Users: users, Reports: reports, Timeline: timeline, Assignments: assignments}
}

type assignmentResp struct {
	ID          uint64           `json:"id"`
	ReportID    uint64           `json:"report_id"`
	AssignedAt  time.Time        `json:"assigned_at"`
	ToDoList    []model.TodoItem `json:"to_do_list"`
	Progress    int              `json:"progress"`
	Notes       string           `json:"notes"`
	IsCompleted bool             `json:"is_completed"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty"`
}

func toAssignmentResp(a model.Assignment) assignmentResp {
	return assignmentResp{
		ID:          a.ID,
		ReportID:    a.ReportID,
		AssignedAt:  a.AssignedAt,
		ToDoList:    a.ToDoList,
		Progress:    a.Progress,
		Notes:       a.Notes,
		IsCompleted: a.IsCompleted,
		CompletedAt: a.CompletedAt,
		ClosedAt:    a.ClosedAt,
	}
}

// ListAssignments returns the assignments delegated to the acting staff
// member, newest first.
func (h *StaffHandler) ListAssignments(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	assignments, err := h.Assignments.ListByStaff(ctx, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]assignmentResp, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResp(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type progressReq struct {
	Progress  int    `json:"progress"`
	DoneTasks []int  `json:"done_tasks"` // indexes into the checklist to mark done
	Notes     string `json:"notes"`
}

// UpdateProgress records new progress on an assignment. Progress may never
// decrease within an assignment; the only reset is a revision transition
// starting a new cycle. Checklist items can only be checked off, never
// unchecked.
func (h *StaffHandler) UpdateProgress(c echo.Context) error {
	_, a, ok := h.loadOwnAssignment(c)
	if !ok {
		return nil
	}
	if !a.Open() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "assignment is no longer open"})
	}

	var req progressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := workflow.ValidateProgress(a.Progress, req.Progress); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	todo := a.ToDoList
	for _, idx := range req.DoneTasks {
		if idx < 0 || idx >= len(todo) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "done_tasks index out of range"})
		}
		todo[idx].Done = true
	}
	notes := a.Notes
	if req.Notes != "" {
		notes = req.Notes
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Assignments.UpdateProgress(ctx, a.ID, req.Progress, todo, notes); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "assignment changed concurrently"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"progress": req.Progress})
}

// Complete closes an assignment and moves its report to completed. It
// requires progress to be at 100 and every checklist item checked off; the
// status transition and the completion flag commit in one transaction.
func (h *StaffHandler) Complete(c echo.Context) error {
	actor, a, ok := h.loadOwnAssignment(c)
	if !ok {
		return nil
	}
	if !a.Open() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "assignment is no longer open"})
	}
	if err := workflow.ValidateCompletion(a.Progress, model.DoneCount(a.ToDoList), len(a.ToDoList)); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, a.ReportID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	next, err := workflow.Transition(rep.Status, workflow.StatusCompleted)
	if err != nil {
		return transitionError(c, err)
	}

	tx, err := h.Reports.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if err := h.Assignments.CompleteTx(ctx, tx, a.ID, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "assignment changed concurrently"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete failed"})
	}
	if err := h.Reports.UpdateStatusTx(ctx, tx, rep.ID, rep.Status, next); err != nil {
		return transitionError(c, err)
	}
	ev := model.TimelineEvent{
		ReportID:    rep.ID,
		Status:      string(next),
		StatusLabel: next.Label(),
		ActorID:     actor.ID,
		ActorName:   actorName(actor),
		Description: "All assignment tasks completed",
		OccurredAt:  now,
	}
	if err := h.Timeline.AppendTx(ctx, tx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record timeline failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	publishStatusEvent(rep, string(rep.Status), ev)
	return c.JSON(http.StatusOK, echo.Map{"status": ev.Status, "status_label": ev.StatusLabel})
}

// loadOwnAssignment resolves the acting staff member and the assignment
// addressed by :id, enforcing ownership. On failure the error response has
// already been written and ok is false.
func (h *StaffHandler) loadOwnAssignment(c echo.Context) (model.User, model.Assignment, bool) {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.User{}, model.Assignment{}, false
	}
	assignmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || assignmentID == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment id"})
		return model.User{}, model.Assignment{}, false
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return model.User{}, model.Assignment{}, false
	}
	if a.StaffID == nil || *a.StaffID != actor.ID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return model.User{}, model.Assignment{}, false
	}
	return actor, a, true
}
