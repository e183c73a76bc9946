package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/handler"
	"github.com/wicaksana/report-tracking/internal/middleware"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// RegisterCoordinator registers the coordinator surface: the review queue
// and the verification, delegation and revision transitions.
func RegisterCoordinator(e *echo.Echo, h *handler.CoordinatorHandler, jwtSecret string) {
	g := e.Group("/v1/coordinator")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(workflow.RoleCoordinator))

	g.GET("/reports", h.ListQueue)
	g.GET("/assignments", h.ListAssignments)
	g.POST("/reports/:id/verify", h.StartVerification)
	g.POST("/reports/:id/resume", h.ResumeVerification)
	g.POST("/reports/:id/delegate", h.Delegate)
	g.POST("/reports/:id/revision", h.RequestRevision)
}
