package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/catalog"
	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/repository"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// TUHandler serves the TU surface: registering reports, attaching document
// metadata and forwarding reports to a coordinator. JWT and role middleware
// run before every method; the acting user is still re-read from the users
// table so role changes take effect immediately.
type TUHandler struct {
	Users     *repository.UserRepo
	Reports   *repository.ReportRepo
	Timeline  *repository.TimelineRepo
	Documents *repository.DocumentRepo
}

func NewTUHandler(users *repository.UserRepo, reports *repository.ReportRepo, timeline *repository.TimelineRepo, documents *repository.DocumentRepo) *TUHandler {
	if users == nil || reports == nil || timeline == nil || documents == nil {
		panic("nil repository passed to NewTUHandler")
	}
	return &TUHandler{Users: users, Reports: reports, Timeline: timeline, Documents: documents}
}

type dispositionReq struct {
	Nature           []string `json:"nature"`
	Degree           []string `json:"degree"`
	AgendaNo         string   `json:"agenda_no"`
	OriginatingGroup string   `json:"originating_group"`
	SestamaAgenda    string   `json:"sestama_agenda"`
	LetterNo         string   `json:"letter_no"`
	From             string   `json:"from"`
	AgendaDate       string   `json:"agenda_date"`
	LetterDate       string   `json:"letter_date"`
}

type createReportReq struct {
	LetterNumber string         `json:"letter_number"`
	Subject      string         `json:"subject"`
	ServiceType  string         `json:"service_type"`
	Disposition  dispositionReq `json:"disposition_sheet"`
}

type reportResp struct {
	ID           uint64    `json:"id"`
	LetterNumber string    `json:"letter_number"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"status_label"`
	ServiceType  string    `json:"service_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReportResp(rep model.Report) reportResp {
	return reportResp{
		ID:           rep.ID,
		LetterNumber: rep.LetterNumber,
		Subject:      rep.Subject,
		Status:       string(rep.Status),
		StatusLabel:  rep.Status.Label(),
		ServiceType:  rep.ServiceType,
		CreatedAt:    rep.CreatedAt,
	}
}

// CreateReport registers a new report. The report starts in the workflow
// initial status and the implicit creation event is appended in the same
// transaction as the insert, so a report is never visible without its first
// timeline entry.
func (h *TUHandler) CreateReport(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.LetterNumber = strings.TrimSpace(req.LetterNumber)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.LetterNumber == "" || req.Subject == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "letter_number and subject are required"})
	}
	if !catalog.ValidServiceType(req.ServiceType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service_type"})
	}

	rep := model.Report{
		LetterNumber: req.LetterNumber,
		Subject:      req.Subject,
		Status:       workflow.Initial(),
		ServiceType:  req.ServiceType,
		Disposition: model.DispositionSheet{
			Nature:           req.Disposition.Nature,
			Degree:           req.Disposition.Degree,
			AgendaNo:         req.Disposition.AgendaNo,
			OriginatingGroup: req.Disposition.OriginatingGroup,
			SestamaAgenda:    req.Disposition.SestamaAgenda,
			LetterNo:         req.Disposition.LetterNo,
			From:             req.Disposition.From,
			AgendaDate:       req.Disposition.AgendaDate,
			LetterDate:       req.Disposition.LetterDate,
		},
		CreatedBy: actor.ID,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tx, err := h.Reports.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Reports.CreateTx(ctx, tx, &rep); err != nil {
		if err == repository.ErrLetterNumberExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "letter number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create report failed"})
	}

	ev := model.TimelineEvent{
		ReportID:    rep.ID,
		Status:      string(rep.Status),
		StatusLabel: rep.Status.Label(),
		ActorID:     actor.ID,
		ActorName:   actorName(actor),
		Description: "Report created and initial documents uploaded",
		OccurredAt:  time.Now().UTC(),
	}
	if err := h.Timeline.AppendTx(ctx, tx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record timeline failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	publishStatusEvent(rep, "", ev)
	return c.JSON(http.StatusCreated, toReportResp(rep))
}

// ListMyReports returns the reports registered by the acting TU user.
func (h *TUHandler) ListMyReports(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reports, err := h.Reports.ListByCreator(ctx, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]reportResp, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toReportResp(rep))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type forwardReq struct {
	Coordinator string `json:"coordinator"`
}

// ForwardReport moves a report from created to forwarded. Only the TU user
// who registered the report may forward it.
func (h *TUHandler) ForwardReport(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reportID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}
	var req forwardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	coordinator := strings.TrimSpace(req.Coordinator)
	if coordinator == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "coordinator is required"})
	}
	if !catalog.ValidCoordinator(coordinator) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown coordinator"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, reportID)
	if err != nil {
		if err == repository.ErrReportNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rep.CreatedBy != actor.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	desc := "Report forwarded to " + coordinator + " for review"
	ev, err := applyTransition(ctx, h.Reports.DB, h.Reports, h.Timeline, rep, workflow.StatusForwarded, actor, desc)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": ev.Status, "status_label": ev.StatusLabel})
}

type attachDocumentReq struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

// AttachDocument records document metadata for a report. Documents are
// append-only; the file itself is stored elsewhere and only referenced here.
func (h *TUHandler) AttachDocument(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reportID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}
	var req attachDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.FileName) == "" || strings.TrimSpace(req.FileURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file_name and file_url are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, reportID)
	if err != nil {
		if err == repository.ErrReportNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rep.CreatedBy != actor.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	doc := model.Document{
		ReportID: rep.ID,
		FileName: strings.TrimSpace(req.FileName),
		FileURL:  strings.TrimSpace(req.FileURL),
		FileType: strings.TrimSpace(req.FileType),
	}
	if _, err := h.Documents.Create(ctx, &doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save document failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": doc.ID})
}

// ListDocuments returns the document metadata attached to one of the acting
// user's reports.
func (h *TUHandler) ListDocuments(c echo.Context) error {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reportID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, reportID)
	if err != nil {
		if err == repository.ErrReportNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rep.CreatedBy != actor.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	docs, err := h.Documents.ListByReport(ctx, rep.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type docResp struct {
		ID         uint64    `json:"id"`
		FileName   string    `json:"file_name"`
		FileURL    string    `json:"file_url"`
		FileType   string    `json:"file_type"`
		UploadedAt time.Time `json:"uploaded_at"`
	}
	out := make([]docResp, 0, len(docs))
	for _, d := range docs {
		out = append(out, docResp{ID: d.ID, FileName: d.FileName, FileURL: d.FileURL, FileType: d.FileType, UploadedAt: d.UploadedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
