package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PolarWolf314/waypoint/internal/attachments"
	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/store"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// Tracker runs workflow operations against one store.
type Tracker struct {
	// Store holds the four tables.
	Store store.DocumentStore

	// Attachments receives uploaded files. AttachFiles fails when nil.
	Attachments *attachments.Store

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// ClearCompletionOnRegression clears Completed_By and Completed_Date
	// when a completed step moves back to another status.
	ClearCompletionOnRegression bool
}

// New returns a Tracker over s.
func New(s store.DocumentStore) *Tracker {
	return &Tracker{Store: s}
}

// now returns the current time at the precision the store keeps.
func (tr *Tracker) now() time.Time {
	now := time.Now
	if tr.Now != nil {
		now = tr.Now
	}
	return now().Truncate(time.Second)
}

func (tr *Tracker) load(ctx context.Context) (*tables.Tables, store.Revision, error) {
	if tr.Store == nil {
		return nil, "", fmt.Errorf("%w: no store configured", kerrors.ErrStoreMissingOrCorrupt)
	}
	return tr.Store.Load(ctx)
}

// save writes t conditionally on base. Failures other than a conflict are
// reported as ErrPersistence.
func (tr *Tracker) save(ctx context.Context, t *tables.Tables, base store.Revision) error {
	_, err := tr.Store.Save(ctx, t, base)
	if err == nil {
		return nil
	}
	if errors.Is(err, kerrors.ErrConflict) || errors.Is(err, kerrors.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", kerrors.ErrPersistence, err)
}

// statusRow finds the row for (recordID, stepID), checking that the record
// and step exist first so the error names what is actually missing.
func statusRow(t *tables.Tables, recordID, stepID int) (int, error) {
	if _, ok := t.Record(recordID); !ok {
		return -1, fmt.Errorf("%w: %d", kerrors.ErrRecordNotFound, recordID)
	}
	idx := t.StatusIndex(recordID, stepID)
	if idx < 0 {
		return -1, fmt.Errorf("%w: record %d step %d", kerrors.ErrStatusRowNotFound, recordID, stepID)
	}
	return idx, nil
}
