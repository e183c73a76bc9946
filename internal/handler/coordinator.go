package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/repository"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// CoordinatorHandler serves the coordinator surface: the verification queue,
// delegation to staff and the revision loop.
type CoordinatorHandler struct {
	Users       *repository.UserRepo
	Reports     *repository.ReportRepo
	Timeline    *repository.TimelineRepo
	Assignments *repository.AssignmentRepo
}

func NewCoordinatorHandler(users *repository.UserRepo, reports *repository.ReportRepo, timeline *repository.TimelineRepo, assignments *repository.AssignmentRepo) *CoordinatorHandler {
	if users == nil || reports == nil || timeline == nil || assignments == nil {
		panic("nil repository passed to NewCoordinatorHandler")
	}
	return &CoordinatorHandler{Users: users, Reports: reports, Timeline: timeline, Assignments: assignments}
}

// ListQueue returns the reports a coordinator can act on: freshly forwarded
// ones, those under verification, in progress and those returned for
// revision.
func (h *CoordinatorHandler) ListQueue(c echo.Context) error {
	if _, err := loadActor(c, h.Users); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reports, err := h.Reports.ListByStatus(ctx,
		workflow.StatusForwarded, workflow.StatusInVerification,
		workflow.StatusInProgress, workflow.StatusRevision)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]reportResp, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toReportResp(rep))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListAssignments returns the assignments this coordinator has created,
// across every report, newest first.
func (h *CoordinatorHandler) ListAssignments(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Assignments.ListByCoordinator(ctx, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]assignmentResp, 0, len(list))
	for _, a := range list {
		out = append(out, toAssignmentResp(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// StartVerification moves a forwarded report into document verification.
func (h *CoordinatorHandler) StartVerification(c echo.Context) error {
	return h.simpleTransition(c, workflow.StatusInVerification, "Document verification in progress")
}

// ResumeVerification brings a report back from revision into verification,
// the only legal way out of the revision state.
func (h *CoordinatorHandler) ResumeVerification(c echo.Context) error {
	return h.simpleTransition(c, workflow.StatusInVerification, "Revised documents back in verification")
}

type revisionReq struct {
	Reason string `json:"reason"`
}

// RequestRevision sends an in-progress report back for rework. The open
// assignment is closed in the same transaction pattern; the next delegation
// starts a fresh cycle with progress at zero.
func (h *CoordinatorHandler) RequestRevision(c echo.Context) error {
	actor, rep, ok := h.loadReport(c)
	if !ok {
		return nil
	}
	var req revisionReq
	_ = c.Bind(&req)
	desc := strings.TrimSpace(req.Reason)
	if desc == "" {
		desc = "Deficiencies found; report returned for revision"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// Close the running assignment first so no staff update lands on a
	// report that is leaving in_progress.
	tx, err := h.Reports.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()

	next, err := workflow.Transition(rep.Status, workflow.StatusRevision)
	if err != nil {
		return transitionError(c, err)
	}
	if err := h.Reports.UpdateStatusTx(ctx, tx, rep.ID, rep.Status, next); err != nil {
		return transitionError(c, err)
	}
	if err := h.Assignments.CloseTx(ctx, tx, rep.ID, time.Now().UTC()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close assignment failed"})
	}
	ev := model.TimelineEvent{
		ReportID:    rep.ID,
		Status:      string(next),
		StatusLabel: next.Label(),
		ActorID:     actor.ID,
		ActorName:   actorName(actor),
		Description: desc,
		OccurredAt:  time.Now().UTC(),
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

type delegateReq struct {
	StaffID  uint64   `json:"staff_id"`
	ToDoList []string `json:"to_do_list"`
	Notes    string   `json:"notes"`
}

// Delegate creates an assignment for a verified report and moves it into
// in_progress. The staff reference is optional: a coordinator may work a
// report directly and delegate later cycles to someone else.
func (h *CoordinatorHandler) Delegate(c echo.Context) error {
	actor, rep, ok := h.loadReport(c)
	if !ok {
		return nil
	}
	var req delegateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.ToDoList) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to_do_list is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// One open assignment per report. The status CAS already serializes the
	// transition, but a leftover open cycle means earlier state is corrupt
	// and stacking a second assignment on it would make things worse.
	if _, err := h.Assignments.GetOpenByReport(ctx, rep.ID); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "report already has an open assignment"})
	} else if err != repository.ErrAssignmentNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var staffID *uint64
	desc := "Report being worked by " + actor.Name
	if req.StaffID != 0 {
		staff, err := h.Users.GetByID(ctx, req.StaffID)
		if err != nil || !staff.IsActive || staff.Role != workflow.RoleStaff {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff_id"})
		}
		staffID = &req.StaffID
		desc = "Task assigned to " + staff.Name
	}

	next, err := workflow.Transition(rep.Status, workflow.StatusInProgress)
	if err != nil {
		return transitionError(c, err)
	}

	tx, err := h.Reports.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Reports.UpdateStatusTx(ctx, tx, rep.ID, rep.Status, next); err != nil {
		return transitionError(c, err)
	}

	todo := make([]model.TodoItem, 0, len(req.ToDoList))
	for _, task := range req.ToDoList {
		task = strings.TrimSpace(task)
		if task != "" {
			todo = append(todo, model.TodoItem{Task: task})
		}
	}
	a := model.Assignment{
		ReportID:      rep.ID,
		CoordinatorID: actor.ID,
		StaffID:       staffID,
		ToDoList:      todo,
		Notes:         req.Notes,
	}
	if err := h.Assignments.CreateTx(ctx, tx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create assignment failed"})
	}

	ev := model.TimelineEvent{
		ReportID:    rep.ID,
		Status:      string(next),
		StatusLabel: next.Label(),
		ActorID:     actor.ID,
		ActorName:   actorName(actor),
		Description: desc,
		OccurredAt:  time.Now().UTC(),
	}
	if err := h.Timeline.AppendTx(ctx, tx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record timeline failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	publishStatusEvent(rep, string(rep.Status), ev)
	return c.JSON(http.StatusCreated, echo.Map{
		"assignment_id": a.ID,
		"status":        ev.Status,
		"status_label":  ev.StatusLabel,
	})
}

// simpleTransition covers edges that need no extra writes beyond the status
// update and its timeline event.
func (h *CoordinatorHandler) simpleTransition(c echo.Context, to workflow.Status, desc string) error {
	actor, rep, ok := h.loadReport(c)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := applyTransition(ctx, h.Reports.DB, h.Reports, h.Timeline, rep, to, actor, desc)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": ev.Status, "status_label": ev.StatusLabel})
}

// loadReport resolves the acting coordinator and the report addressed by
// the :id path parameter. On failure the error response has already been
// written and ok is false.
func (h *CoordinatorHandler) loadReport(c echo.Context) (model.User, model.Report, bool) {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.User{}, model.Report{}, false
	}
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reportID == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
		return model.User{}, model.Report{}, false
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, reportID)
	if err != nil {
		if err == repository.ErrReportNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return model.User{}, model.Report{}, false
	}
	return actor, rep, true
}
