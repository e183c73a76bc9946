package router

import (
	"testing"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

var allRoles = []workflow.Role{"", workflow.RoleAdmin, workflow.RoleTU, workflow.RoleCoordinator, workflow.RoleStaff}

var allPaths = []string{
	PathLogin, PathTrack, PathAdmin, PathTU, PathCoordinator, PathStaff,
	"/", "/track/RPT001", "/tu/reports", "/admin/users", "/unknown/section",
}

func TestDefaultRouteFor(t *testing.T) {
	cases := map[workflow.Role]string{
		workflow.RoleAdmin:       PathAdmin,
		workflow.RoleTU:          PathTU,
		workflow.RoleCoordinator: PathCoordinator,
		workflow.RoleStaff:       PathStaff,
	}
	for role, want := range cases {
		if got := DefaultRouteFor(role); got != want {
			t.Errorf("DefaultRouteFor(%q) = %q, want %q", role, got, want)
		}
	}
	if got := DefaultRouteFor(""); got != PathLogin {
		t.Errorf("DefaultRouteFor(anonymous) = %q, want %q", got, PathLogin)
	}
}

func TestTrackOpenToEveryone(t *testing.T) {
	for _, role := range allRoles {
		for _, path := range []string{PathTrack, "/track/RPT001"} {
			if !IsRouteAllowed(role, path) {
				t.Errorf("IsRouteAllowed(%q, %q) = false, want true", role, path)
			}
		}
	}
}

func TestLoginOnlyForAnonymous(t *testing.T) {
	if !IsRouteAllowed("", PathLogin) {
		t.Fatal("anonymous caller should reach login")
	}
	for _, role := range allRoles[1:] {
		if IsRouteAllowed(role, PathLogin) {
			t.Errorf("role %q should not reach login", role)
		}
	}
}

func TestRoleSectionsRequireExactMatch(t *testing.T) {
	sections := map[string]workflow.Role{
		PathAdmin:       workflow.RoleAdmin,
		PathTU:          workflow.RoleTU,
		PathCoordinator: workflow.RoleCoordinator,
		PathStaff:       workflow.RoleStaff,
	}
	for path, owner := range sections {
		for _, role := range allRoles {
			got := IsRouteAllowed(role, path)
			want := role == owner
			if got != want {
				t.Errorf("IsRouteAllowed(%q, %q) = %v, want %v", role, path, got, want)
			}
		}
	}
	// no hierarchy: admin does not inherit the other sections
	for _, path := range []string{PathTU, PathCoordinator, PathStaff} {
		if IsRouteAllowed(workflow.RoleAdmin, path) {
			t.Errorf("admin should not reach %q", path)
		}
	}
}

// Resolve must be total and deterministic: every pair yields exactly one
// resolution and repeated calls agree.
func TestResolveTotalAndDeterministic(t *testing.T) {
	for _, role := range allRoles {
		for _, path := range allPaths {
			first := Resolve(role, path)
			second := Resolve(role, path)
			if first != second {
				t.Fatalf("Resolve(%q, %q) not deterministic: %+v then %+v", role, path, first, second)
			}
			if first.Allowed && first.RedirectTo != "" {
				t.Errorf("Resolve(%q, %q) both allowed and redirecting: %+v", role, path, first)
			}
			if !first.Allowed && first.RedirectTo == "" {
				t.Errorf("Resolve(%q, %q) denied without a redirect", role, path)
			}
		}
	}
}

func TestResolveRedirectTargets(t *testing.T) {
	// anonymous callers land on login
	for _, path := range []string{PathAdmin, PathTU, "/unknown/section"} {
		if res := Resolve("", path); res.Allowed || res.RedirectTo != PathLogin {
			t.Errorf("Resolve(anonymous, %q) = %+v, want redirect to %q", path, res, PathLogin)
		}
	}
	// signed-in callers are sent to their own section, never the requested one
	for _, role := range allRoles[1:] {
		for _, path := range allPaths {
			res := Resolve(role, path)
			if res.Allowed {
				continue
			}
			if res.RedirectTo == path {
				t.Errorf("Resolve(%q, %q) redirected to the requested path", role, path)
			}
			if res.RedirectTo != DefaultRouteFor(role) {
				t.Errorf("Resolve(%q, %q) = %+v, want redirect to %q", role, path, res, DefaultRouteFor(role))
			}
		}
	}
}

func TestUnknownRoleTreatedAsAnonymous(t *testing.T) {
	res := Resolve(workflow.Role("superuser"), PathAdmin)
	if res.Allowed || res.RedirectTo != PathLogin {
		t.Errorf("Resolve(unknown role, %q) = %+v, want redirect to %q", PathAdmin, res, PathLogin)
	}
}
