package workflows

import (
	"fmt"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// Allowed reports whether a user holding role may update a step that
// requires required.
//
//   - Any admits every user, including users with unrecognized roles.
//   - Manager admits Manager and Lead.
//   - Lead admits Lead only.
//   - Any other literal admits a user whose known role equals it exactly.
func Allowed(required tables.RequiredRole, role tables.Role) bool {
	switch required {
	case tables.RequireAny:
		return true
	case tables.RequireManager:
		return role == tables.RoleManager || role == tables.RoleLead
	case tables.RequireLead:
		return role == tables.RoleLead
	default:
		return role.Known() && string(role) == string(required)
	}
}

// CheckRole returns ErrPermissionDenied, naming the required role, when
// role does not satisfy required.
func CheckRole(required tables.RequiredRole, role tables.Role) error {
	if Allowed(required, role) {
		return nil
	}
	return fmt.Errorf("%w: requires %s role (you are %q)", kerrors.ErrPermissionDenied, required, role)
}

// checkAdmin gates edits of the Users and Steps tables.
func checkAdmin(actor tables.User) error {
	if actor.Role == tables.RoleLead || actor.Role == tables.RoleManager {
		return nil
	}
	return fmt.Errorf("%w: only Lead or Manager users may edit reference tables (you are %q)", kerrors.ErrPermissionDenied, actor.Role)
}
