package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/handler"
	"github.com/wicaksana/report-tracking/internal/middleware"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// RegisterTU registers the TU surface: creating reports, forwarding them to
// a coordinator and attaching document metadata. Every route requires a
// valid access token with the tu role; no other role reaches this group.
func RegisterTU(e *echo.Echo, h *handler.TUHandler, jwtSecret string) {
	g := e.Group("/v1/tu")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(workflow.RoleTU))

	g.POST("/reports", h.CreateReport)
	g.GET("/reports", h.ListMyReports)
	g.POST("/reports/:id/forward", h.ForwardReport)
	g.POST("/reports/:id/documents", h.AttachDocument)
	g.GET("/reports/:id/documents", h.ListDocuments)
}
