package handler // handler defines http handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/repository"
)

// dbTimeout bounds every database call issued from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the user_id claim from echo.Context and converts it to
// uint64. JWT numeric claims decode as float64, so several representations
// are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("user_id missing from context")
}

// loadActor re-reads the acting user from the users table. The JWT role
// claim routes requests, but the identity store stays authoritative: a
// deactivated or re-roled user is caught here even with a live token.
func loadActor(c echo.Context, users *repository.UserRepo) (model.User, error) {
	id, err := getUserID(c)
	if err != nil {
		return model.User{}, err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if !u.IsActive {
		return model.User{}, repository.ErrForbidden
	}
	return u, nil
}

// actorName formats the display name recorded on timeline events.
func actorName(u model.User) string {
	return fmt.Sprintf("%s (%s)", u.Name, u.Role.Title())
}
