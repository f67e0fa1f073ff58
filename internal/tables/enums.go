package tables

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
)

// Role is the role held by a user.
type Role string

const (
	RoleLead      Role = "Lead"
	RoleManager   Role = "Manager"
	RoleDeveloper Role = "Developer"
	RoleBusiness  Role = "Business"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleLead, RoleManager, RoleDeveloper, RoleBusiness}

// Known reports whether r is one of the four defined roles.
func (r Role) Known() bool {
	switch r {
	case RoleLead, RoleManager, RoleDeveloper, RoleBusiness:
		return true
	default:
		return false
	}
}

// ParseRole matches s against the known roles, ignoring case and
// surrounding whitespace.
func ParseRole(s string) (Role, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(trimmed, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", kerrors.ErrInvalidRole, s)
}

// RequiredRole is the role a step demands from whoever updates it. Besides
// RequireAny, RequireLead and RequireManager any other literal may appear in
// an edited Steps table.
type RequiredRole string

const (
	RequireAny     RequiredRole = "Any"
	RequireLead    RequiredRole = "Lead"
	RequireManager RequiredRole = "Manager"
)

// Status is the progress of one step of one record.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every known status in workflow order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Known reports whether s is one of the three defined statuses.
func (s Status) Known() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus matches s against the known statuses, ignoring case and
// surrounding whitespace. Hyphens and underscores are accepted in place of
// the space so "in-progress" parses as StatusInProgress.
func ParseStatus(s string) (Status, error) {
	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, st := range Statuses {
		if strings.EqualFold(normalized, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", kerrors.ErrInvalidStatus, s)
}
