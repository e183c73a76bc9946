// Package router registers HTTP routes and holds the navigation policy that
// decides which top-level section each role may open.
package router

import (
	"strings"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

// Top level navigation paths. Role sections carry the role name as their
// first segment.
const (
	PathLogin       = "/login"
	PathTrack       = "/track"
	PathAdmin       = "/admin"
	PathTU          = "/tu"
	PathCoordinator = "/coordinator"
	PathStaff       = "/staff"
)

// Resolution is the outcome of resolving a navigation request. Exactly one
// of Allowed or RedirectTo applies: when Allowed is false, RedirectTo names
// the path the caller should land on instead.
type Resolution struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// DefaultRouteFor maps a role to its landing section. The switch is
// exhaustive over the closed role set; an unknown role lands on login.
func DefaultRouteFor(role workflow.Role) string {
	switch role {
	case workflow.RoleAdmin:
		return PathAdmin
	case workflow.RoleTU:
		return PathTU
	case workflow.RoleCoordinator:
		return PathCoordinator
	case workflow.RoleStaff:
		return PathStaff
	default:
		return PathLogin
	}
}

// IsRouteAllowed reports whether a caller with the given role may open path.
// An empty role means anonymous. Tracking is open to everyone, login only to
// anonymous callers, and role sections require an exact role match with no
// hierarchy. Every other path just requires being signed in.
func IsRouteAllowed(role workflow.Role, path string) bool {
	seg := firstSegment(path)
	switch seg {
	case "track":
		return true
	case "login":
		return role == ""
	case "admin":
		return role == workflow.RoleAdmin
	case "tu":
		return role == workflow.RoleTU
	case "coordinator":
		return role == workflow.RoleCoordinator
	case "staff":
		return role == workflow.RoleStaff
	default:
		return role.Valid()
	}
}

// Resolve decides where a navigation request ends up. It is total: every
// (role, path) pair yields exactly one resolution, and resolving the same
// pair twice gives the same answer. Disallowed requests redirect to login
// for anonymous callers and to the role's landing section otherwise.
func Resolve(role workflow.Role, path string) Resolution {
	if !role.Valid() {
		role = ""
	}
	if IsRouteAllowed(role, path) {
		return Resolution{Allowed: true}
	}
	if role == "" {
		return Resolution{RedirectTo: PathLogin}
	}
	return Resolution{RedirectTo: DefaultRouteFor(role)}
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
