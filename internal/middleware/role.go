package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

// RequireRole returns a middleware that enforces that the authenticated user
// holds one of the specified roles. Roles match exactly: there is no
// hierarchy, so an admin is rejected from tu/coordinator/staff surfaces just
// like any other mismatched role. It assumes JWTAuth has stored the role
// claim in the context under "role".
func RequireRole(roles ...workflow.Role) echo.MiddlewareFunc {
	allowed := make(map[workflow.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			raw, ok := v.(string)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			role, err := workflow.ParseRole(raw)
			if err != nil || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
