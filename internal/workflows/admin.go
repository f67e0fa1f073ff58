package workflows

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/utils"
)

// Users returns the Users table.
func (tr *Tracker) Users(ctx context.Context) ([]tables.User, error) {
	t, _, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}
	return t.Users, nil
}

// Steps returns the Steps table.
func (tr *Tracker) Steps(ctx context.Context) ([]tables.StepTemplate, error) {
	t, _, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}
	return t.Steps, nil
}

// ReplaceResult contains the outcome of ReplaceUsers and ReplaceSteps.
type ReplaceResult struct {
	// Previous is the number of rows before the replacement.
	Previous int

	// Count is the number of rows written.
	Count int
}

// ReplaceUsers overwrites the Users table. Only Lead and Manager actors may
// do this.
//
// Usernames must be non-empty and unique, roles must be known and emails
// well formed. Nothing is written if any user is invalid.
func (tr *Tracker) ReplaceUsers(ctx context.Context, actor tables.User, users []tables.User) (*ReplaceResult, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}
	cleaned, err := validateUsers(users)
	if err != nil {
		return nil, err
	}

	t, rev, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}
	result := &ReplaceResult{Previous: len(t.Users), Count: len(cleaned)}
	t.Users = cleaned

	if err := tr.save(ctx, t, rev); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceSteps overwrites the Steps table. Only Lead and Manager actors may
// do this. Existing status rows are left as they are; records created
// afterwards fan out over the new templates.
//
// Step IDs must be positive and unique, and every step needs a name and a
// required role.
func (tr *Tracker) ReplaceSteps(ctx context.Context, actor tables.User, steps []tables.StepTemplate) (*ReplaceResult, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}
	cleaned, err := validateSteps(steps)
	if err != nil {
		return nil, err
	}

	t, rev, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}
	result := &ReplaceResult{Previous: len(t.Steps), Count: len(cleaned)}
	t.Steps = cleaned

	if err := tr.save(ctx, t, rev); err != nil {
		return nil, err
	}
	return result, nil
}

func validateUsers(users []tables.User) ([]tables.User, error) {
	seen := make(map[string]bool, len(users))
	cleaned := make([]tables.User, 0, len(users))
	for i, u := range users {
		u.Username = strings.TrimSpace(u.Username)
		u.Email = strings.TrimSpace(u.Email)
		if u.Username == "" {
			return nil, fmt.Errorf("%w: username of user %d", kerrors.ErrMissingField, i+1)
		}
		if seen[u.Username] {
			return nil, fmt.Errorf("%w: username %q", kerrors.ErrDuplicateKey, u.Username)
		}
		seen[u.Username] = true

		role, err := tables.ParseRole(string(u.Role))
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		u.Role = role

		if !utils.IsValidEmail(u.Email) {
			return nil, fmt.Errorf("%w: user %q: %q", kerrors.ErrInvalidEmail, u.Username, u.Email)
		}
		cleaned = append(cleaned, u)
	}
	return cleaned, nil
}

func validateSteps(steps []tables.StepTemplate) ([]tables.StepTemplate, error) {
	seen := make(map[int]bool, len(steps))
	cleaned := make([]tables.StepTemplate, 0, len(steps))
	for i, s := range steps {
		s.Header = strings.TrimSpace(s.Header)
		s.StepName = strings.TrimSpace(s.StepName)
		s.RequiredRole = tables.RequiredRole(strings.TrimSpace(string(s.RequiredRole)))
		if s.StepID <= 0 {
			return nil, fmt.Errorf("%w: step %d needs a positive step_id", kerrors.ErrMissingField, i+1)
		}
		if seen[s.StepID] {
			return nil, fmt.Errorf("%w: step_id %d", kerrors.ErrDuplicateKey, s.StepID)
		}
		seen[s.StepID] = true
		if s.StepName == "" {
			return nil, fmt.Errorf("%w: step_name of step %d", kerrors.ErrMissingField, s.StepID)
		}
		if s.RequiredRole == "" {
			return nil, fmt.Errorf("%w: required_role of step %d", kerrors.ErrMissingField, s.StepID)
		}
		cleaned = append(cleaned, s)
	}
	return cleaned, nil
}
