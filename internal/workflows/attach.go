package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/waypoint/internal/attachments"
	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// AttachFilesOptions configures AttachFiles.
type AttachFilesOptions struct {
	RecordID int
	StepID   int

	// Sources are file paths or doublestar patterns.
	Sources []string

	// Replace overwrites Attachment_Path instead of appending to it.
	Replace bool
}

// AttachFilesResult contains the outcome of AttachFiles.
type AttachFilesResult struct {
	Row tables.StatusRow

	// Files are the source files that were copied.
	Files []string

	// Stored are the paths recorded for the copies, relative to the
	// attachments directory.
	Stored []string
}

// AttachFiles copies files into the attachments directory and records them
// on a step. Any user may attach to any step.
//
// Returns ErrNoFilesFound if a source matches nothing and ErrNotFound if the
// status row does not exist. Copies are removed again if the tables cannot
// be written.
func (tr *Tracker) AttachFiles(ctx context.Context, opts AttachFilesOptions) (*AttachFilesResult, error) {
	if tr.Attachments == nil {
		return nil, fmt.Errorf("%w: attachments directory", kerrors.ErrMissingField)
	}
	if len(opts.Sources) == 0 {
		return nil, fmt.Errorf("%w: no files given", kerrors.ErrNoFilesFound)
	}

	t, rev, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := statusRow(t, opts.RecordID, opts.StepID)
	if err != nil {
		return nil, err
	}

	files, err := attachments.Expand(opts.Sources)
	if err != nil {
		return nil, err
	}

	result := &AttachFilesResult{Files: files}
	for _, f := range files {
		rel, err := tr.Attachments.Put(ctx, opts.RecordID, opts.StepID, f)
		if err != nil {
			tr.removeStored(result.Stored)
			return nil, err
		}
		result.Stored = append(result.Stored, rel)
	}

	row := &t.Status[idx]
	paths := result.Stored
	if !opts.Replace {
		paths = append(row.Attachments(), result.Stored...)
	}
	row.AttachmentPath = tables.JoinAttachments(paths)
	result.Row = *row

	if err := tr.save(ctx, t, rev); err != nil {
		tr.removeStored(result.Stored)
		return nil, err
	}
	return result, nil
}

func (tr *Tracker) removeStored(rels []string) {
	for _, rel := range rels {
		_ = tr.Attachments.Remove(rel)
	}
}
