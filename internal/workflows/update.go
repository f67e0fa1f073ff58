package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// UpdateStepOptions configures UpdateStep.
type UpdateStepOptions struct {
	// RecordID and StepID select the status row.
	RecordID int
	StepID   int

	// Status is the new status.
	Status tables.Status

	// AssignedTo is the new assignee. Empty clears the assignment.
	AssignedTo string

	// KeepAssignment leaves Assigned_To untouched and ignores AssignedTo.
	KeepAssignment bool

	// Actor is the user making the change.
	Actor tables.User
}

// UpdateStepResult contains the outcome of UpdateStep.
type UpdateStepResult struct {
	// Row is the status row as stored.
	Row tables.StatusRow

	// Previous is the status before the update.
	Previous tables.Status

	// ClearedCompletion is true when completion metadata was removed because
	// the step left Completed.
	ClearedCompletion bool
}

// UpdateStep changes the status and assignee of one step of one record.
//
// Checks run in this order, and nothing is written if any fails:
//  1. Status must be a known status (ErrInvalidStatus).
//  2. The record and step template must exist (ErrNotFound).
//  3. The actor's role must satisfy the step's required role
//     (ErrPermissionDenied).
//  4. A non-empty assignee must be an existing user (ErrUserNotFound).
//  5. The status row must exist (ErrNotFound).
//
// Completing a step records the actor and the current time. Moving a step
// away from Completed keeps that metadata unless the Tracker is configured
// to clear it.
func (tr *Tracker) UpdateStep(ctx context.Context, opts UpdateStepOptions) (*UpdateStepResult, error) {
	if !opts.Status.Known() {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrInvalidStatus, opts.Status)
	}

	t, rev, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := t.Record(opts.RecordID); !ok {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrRecordNotFound, opts.RecordID)
	}
	step, ok := t.Step(opts.StepID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrStepNotFound, opts.StepID)
	}

	if err := CheckRole(step.RequiredRole, opts.Actor.Role); err != nil {
		return nil, fmt.Errorf("step %d %q: %w", step.StepID, step.StepName, err)
	}

	assignee := strings.TrimSpace(opts.AssignedTo)
	if !opts.KeepAssignment && assignee != "" {
		if _, ok := t.User(assignee); !ok {
			return nil, fmt.Errorf("%w: assignee %q", kerrors.ErrUserNotFound, assignee)
		}
	}

	idx := t.StatusIndex(opts.RecordID, opts.StepID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: record %d step %d", kerrors.ErrStatusRowNotFound, opts.RecordID, opts.StepID)
	}

	row := &t.Status[idx]
	result := &UpdateStepResult{Previous: row.Status}

	row.Status = opts.Status
	if !opts.KeepAssignment {
		row.AssignedTo = assignee
	}
	switch {
	case opts.Status == tables.StatusCompleted:
		row.CompletedBy = opts.Actor.Username
		row.CompletedDate = tr.now()
	case tr.ClearCompletionOnRegression && (row.CompletedBy != "" || !row.CompletedDate.IsZero()):
		row.CompletedBy = ""
		row.CompletedDate = time.Time{}
		result.ClearedCompletion = true
	}
	result.Row = *row

	if err := tr.save(ctx, t, rev); err != nil {
		return nil, err
	}
	return result, nil
}
