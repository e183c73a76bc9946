package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/handler"
	"github.com/wicaksana/report-tracking/internal/middleware"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// RegisterAdmin registers user directory management. Deleting an account
// needs an explicit confirm=true query parameter and only deactivates it.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(workflow.RoleAdmin))

	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser)
	g.PATCH("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
}
