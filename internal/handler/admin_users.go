package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/config"
	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/repository"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// AdminHandler manages the user directory. Only admins reach these routes;
// the role check happens in middleware and the acting admin is re-read from
// the database on every call.
type AdminHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAdminHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo) *AdminHandler {
	if users == nil || tokens == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type adminUserResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	RoleTitle string    `json:"role_title"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdminUserResp(u model.User) adminUserResp {
	return adminUserResp{
		ID:        u.ID,
		Name:      u.Name,
		UserID:    u.UserID,
		Role:      string(u.Role),
		RoleTitle: u.Role.Title(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsers returns every active account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]adminUserResp, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUserResp(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type createUserReq struct {
	Name     string `json:"name"`
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions an account. The login identifier is unique across
// active and deactivated accounts alike.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.UserID) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, user_id and password are required"})
	}
	role, err := workflow.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Name, req.UserID, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUserIDExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user_id already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toAdminUserResp(u))
}

type updateUserReq struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
	Password string `json:"password"`
}

// UpdateUser edits an account's name, role, active flag and optionally its
// password. Omitted fields keep their current value.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	name := u.Name
	if strings.TrimSpace(req.Name) != "" {
		name = strings.TrimSpace(req.Name)
	}
	role := u.Role
	if req.Role != "" {
		role, err = workflow.ParseRole(req.Role)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
	}
	isActive := u.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	if err := h.Users.Update(ctx, id, name, role, isActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	// A deactivated account must not keep working sessions alive.
	if u.IsActive && !isActive {
		if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}
	if req.Password != "" {
		if err := h.Users.UpdatePassword(ctx, id, req.Password, h.Cfg.BcryptCost); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password update failed"})
		}
	}
	u, err = h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toAdminUserResp(u))
}

// DeleteUser deactivates an account. It requires an explicit confirm=true
// query parameter; without it nothing changes and the caller gets a 400.
// Accounts are never hard deleted so historical timeline entries keep
// resolving.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "deletion requires confirm=true"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	actorID, err := getUserID(c)
	if err == nil && actorID == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete own account"})
	}
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err := h.Users.Deactivate(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// requireAdmin re-reads the acting account and rejects anyone who is no
// longer an active admin, even with a still valid token.
func (h *AdminHandler) requireAdmin(c echo.Context) bool {
	actor, err := loadActor(c, h.Users)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return false
	}
	if actor.Role != workflow.RoleAdmin {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return false
	}
	return true
}
