package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/handler"
	"github.com/wicaksana/report-tracking/internal/middleware"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// RegisterStaff registers the staff surface: the assignment inbox, progress
// updates and completion.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(workflow.RoleStaff))

	g.GET("/assignments", h.ListAssignments)
	g.PATCH("/assignments/:id/progress", h.UpdateProgress)
	g.POST("/assignments/:id/complete", h.Complete)
}
