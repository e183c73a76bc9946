package router

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

// Nav returns a handler that resolves a requested navigation path for the
// caller. A bearer token is optional: without one the caller resolves as
// anonymous, and a malformed or expired token is treated the same way
// rather than rejected, since navigation is advisory and never grants data
// access by itself.
func Nav(jwtSecret string) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.QueryParam("path")
		if path == "" {
			path = "/"
		}
		role := roleFromBearer(c.Request().Header.Get("Authorization"), jwtSecret)
		res := Resolve(role, path)
		return c.JSON(http.StatusOK, echo.Map{
			"path":          path,
			"resolution":    res,
			"default_route": defaultOrLogin(role),
		})
	}
}

func defaultOrLogin(role workflow.Role) string {
	if !role.Valid() {
		return PathLogin
	}
	return DefaultRouteFor(role)
}

// roleFromBearer extracts the role claim from an Authorization header, or ""
// when the header is absent or the token fails verification.
func roleFromBearer(header, secret string) workflow.Role {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	raw, _ := claims["role"].(string)
	role, err := workflow.ParseRole(raw)
	if err != nil {
		return ""
	}
	return role
}
