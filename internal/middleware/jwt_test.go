package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/utils"
)

func callWithToken(t *testing.T, secret, header string) (int, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := JWTAuth(secret)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec.Code, c
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	const secret = "test-secret"
	access, err := utils.NewAccessToken(secret, 3, "tu", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	code, c := callWithToken(t, secret, "Bearer "+access.Token)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if role, _ := c.Get("role").(string); role != "tu" {
		t.Fatalf("role claim = %v, want tu", c.Get("role"))
	}
	if c.Get("user_id") == nil {
		t.Fatal("user_id claim not set")
	}
}

func TestJWTAuthRejectsBadRequests(t *testing.T) {
	const secret = "test-secret"
	access, err := utils.NewAccessToken("other-secret", 3, "tu", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + access.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := callWithToken(t, secret, tc.header)
			if code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", code)
			}
		})
	}
}
