package workflows

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// firstID is the identifier given to the first record.
const firstID = 1000

// NextID returns the identifier for a new record: 1000 for an empty table,
// otherwise one more than the largest existing identifier.
func NextID(records []tables.Record) int {
	if len(records) == 0 {
		return firstID
	}
	max := records[0].UniqueID
	for _, r := range records[1:] {
		if r.UniqueID > max {
			max = r.UniqueID
		}
	}
	return max + 1
}

// CreateRecordOptions configures CreateRecord.
type CreateRecordOptions struct {
	// ClientGroup, LegalEntity and Solution describe the engagement. All are
	// required and trimmed of surrounding whitespace.
	ClientGroup string
	LegalEntity string
	Solution    string

	// Actor is recorded as Created_By.
	Actor tables.User
}

// CreateRecordResult contains the outcome of CreateRecord.
type CreateRecordResult struct {
	// Record is the record as stored.
	Record tables.Record

	// StatusRows is the number of "Not Started" rows created, one per step
	// template.
	StatusRows int
}

// CreateRecord adds a record and gives it one "Not Started" status row for
// every step template that exists at creation time.
//
// Returns ErrMissingField if a field or the actor's username is blank.
// Returns ErrPersistence if the tables cannot be written, in which case
// nothing is stored.
func (tr *Tracker) CreateRecord(ctx context.Context, opts CreateRecordOptions) (*CreateRecordResult, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"client group", &opts.ClientGroup},
		{"legal entity", &opts.LegalEntity},
		{"solution", &opts.Solution},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrMissingField, f.name)
		}
	}
	if strings.TrimSpace(opts.Actor.Username) == "" {
		return nil, fmt.Errorf("%w: acting user", kerrors.ErrMissingField)
	}

	t, rev, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}

	record := tables.Record{
		UniqueID:    NextID(t.Records),
		ClientGroup: opts.ClientGroup,
		LegalEntity: opts.LegalEntity,
		Solution:    opts.Solution,
		CreatedDate: tr.now(),
		CreatedBy:   opts.Actor.Username,
	}
	t.Records = append(t.Records, record)
	for _, step := range t.Steps {
		t.Status = append(t.Status, tables.StatusRow{
			UniqueID: record.UniqueID,
			StepID:   step.StepID,
			Status:   tables.StatusNotStarted,
		})
	}

	if err := tr.save(ctx, t, rev); err != nil {
		return nil, err
	}

	return &CreateRecordResult{
		Record:     record,
		StatusRows: len(t.Steps),
	}, nil
}
