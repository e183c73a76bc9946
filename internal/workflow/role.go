package workflow

import "fmt"

// Role is one of the four fixed application roles. There is no hierarchy:
// an admin does not implicitly gain access to tu, coordinator or staff
// surfaces.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleTU          Role = "tu"
	RoleCoordinator Role = "coordinator"
	RoleStaff       Role = "staff"
)

// Roles lists every defined role in a stable order.
var Roles = []Role{RoleAdmin, RoleTU, RoleCoordinator, RoleStaff}

// ParseRole validates a raw string against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTU, RoleCoordinator, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Title returns the display form of the role used in actor names on the
// tracking timeline, e.g. "John Doe (TU)".
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleTU:
		return "TU"
	case RoleCoordinator:
		return "Coordinator"
	case RoleStaff:
		return "Staff"
	}
	return string(r)
}
