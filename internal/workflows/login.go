package workflows

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// Login resolves username against the Users table. There is no credential
// check; the returned user is the actor passed to the other operations.
//
// Returns ErrUserNotFound if no user has that name.
func (tr *Tracker) Login(ctx context.Context, username string) (tables.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return tables.User{}, fmt.Errorf("%w: username", kerrors.ErrMissingField)
	}
	t, _, err := tr.load(ctx)
	if err != nil {
		return tables.User{}, err
	}
	user, ok := t.User(username)
	if !ok {
		return tables.User{}, fmt.Errorf("%w: %q", kerrors.ErrUserNotFound, username)
	}
	return user, nil
}
