package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/handler"
	"github.com/wicaksana/report-tracking/internal/middleware"
)

// RegisterRoutes registers routes that require neither authentication nor
// any middleware. Currently that is only the health check used by load
// balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Login, refresh and logout
// live under /v1/auth and need no access token; /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Login exchanges credentials for an access and a refresh token.
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a new access token.
	g.POST("/refresh", a.Refresh)
	// RefreshAccess issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout revokes the presented refresh token. It takes the token in the
	// body rather than a JWT so that a client with an expired access token
	// can still end its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated read surface: the tracking
// lookup and the fixed catalogs. Extra middleware (Redis cache, rate limit)
// is passed in by the caller so that the server still boots without Redis.
func RegisterPublic(e *echo.Echo, t *handler.TrackingHandler, cat *handler.CatalogHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Track lets anyone follow a report by its letter number. Case
	// sensitive on purpose: letter numbers are official identifiers.
	g.GET("/track/:letter_number", t.Track)

	g.GET("/catalog/service-types", cat.ServiceTypes)
	g.GET("/catalog/coordinators", cat.Coordinators)
	g.GET("/catalog/todo-templates", cat.TodoTemplates)
	g.GET("/catalog/service-types/:service_type/documents", cat.RequiredDocuments)

	// Nav resolves a requested section for the caller using the navigation
	// policy. Anonymous callers are fine here, so it sits outside the JWT
	// group and parses the bearer token itself when one is present.
	e.GET("/v1/nav", Nav(jwtSecret))
}
