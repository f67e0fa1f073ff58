package workflows

import (
	"context"

	"github.com/PolarWolf314/waypoint/internal/tables"
)

// SetCommentOptions configures SetComment.
type SetCommentOptions struct {
	RecordID int
	StepID   int

	// Comments replaces the existing comment.
	Comments string
}

// SetCommentResult contains the outcome of SetComment.
type SetCommentResult struct {
	Row tables.StatusRow

	// Previous is the comment that was replaced.
	Previous string
}

// SetComment overwrites the comment of a step. Any user may comment on any
// step.
//
// Returns ErrNotFound if the record or its status row does not exist.
func (tr *Tracker) SetComment(ctx context.Context, opts SetCommentOptions) (*SetCommentResult, error) {
	t, rev, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := statusRow(t, opts.RecordID, opts.StepID)
	if err != nil {
		return nil, err
	}

	row := &t.Status[idx]
	result := &SetCommentResult{Previous: row.Comments}
	row.Comments = opts.Comments
	result.Row = *row

	if err := tr.save(ctx, t, rev); err != nil {
		return nil, err
	}
	return result, nil
}
