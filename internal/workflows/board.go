package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// BoardStep is one checklist entry on the board.
type BoardStep struct {
	Template tables.StepTemplate `json:"template"`

	// Row is nil when the template was added after the record was created.
	Row *tables.StatusRow `json:"row,omitempty"`

	// CanUpdate reports whether the actor passes the step's role gate.
	CanUpdate bool `json:"can_update"`

	// AttachmentMissing is true when the step needs an attachment and has
	// none.
	AttachmentMissing bool `json:"attachment_missing"`
}

// Status returns the row's status, or "" when there is no row.
func (s BoardStep) Status() tables.Status {
	if s.Row == nil {
		return ""
	}
	return s.Row.Status
}

// StepGroup holds the steps sharing one Header.
type StepGroup struct {
	Header string      `json:"header"`
	Steps  []BoardStep `json:"steps"`
}

// Summary counts a record's progress.
type Summary struct {
	// Counts maps each status literal found on the record to its number of
	// rows.
	Counts map[tables.Status]int `json:"counts"`

	// Required is the number of non-optional step templates.
	Required int `json:"required"`

	// RequiredCompleted is how many of those are Completed.
	RequiredCompleted int `json:"required_completed"`

	// Percent is RequiredCompleted as a percentage of Required.
	Percent float64 `json:"percent"`
}

// BoardResult contains the outcome of Board.
type BoardResult struct {
	Record  tables.Record `json:"record"`
	Groups  []StepGroup   `json:"groups"`
	Summary Summary       `json:"summary"`
}

// Board lays out a record's checklist for display. Groups appear in the
// order their header first occurs in the Steps table; steps keep table order
// within a group.
//
// Returns ErrRecordNotFound if the record does not exist.
func (tr *Tracker) Board(ctx context.Context, recordID int, actor tables.User) (*BoardResult, error) {
	t, _, err := tr.load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := t.Record(recordID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrRecordNotFound, recordID)
	}

	result := &BoardResult{
		Record:  record,
		Summary: summarize(t, recordID),
	}
	groupIndex := make(map[string]int)
	for _, tmpl := range t.Steps {
		step := BoardStep{
			Template:  tmpl,
			CanUpdate: Allowed(tmpl.RequiredRole, actor.Role),
		}
		if idx := t.StatusIndex(recordID, tmpl.StepID); idx >= 0 {
			row := t.Status[idx]
			step.Row = &row
		}
		step.AttachmentMissing = tmpl.AttachmentRequired && (step.Row == nil || len(step.Row.Attachments()) == 0)

		gi, ok := groupIndex[tmpl.Header]
		if !ok {
			gi = len(result.Groups)
			groupIndex[tmpl.Header] = gi
			result.Groups = append(result.Groups, StepGroup{Header: tmpl.Header})
		}
		result.Groups[gi].Steps = append(result.Groups[gi].Steps, step)
	}
	return result, nil
}

// summarize counts the status rows of a record. Required steps without a
// row count as not completed.
func summarize(t *tables.Tables, recordID int) Summary {
	s := Summary{Counts: make(map[tables.Status]int)}
	for _, row := range t.StatusFor(recordID) {
		s.Counts[row.Status]++
	}
	for _, tmpl := range t.Steps {
		if tmpl.Optional {
			continue
		}
		s.Required++
		if idx := t.StatusIndex(recordID, tmpl.StepID); idx >= 0 && t.Status[idx].Status == tables.StatusCompleted {
			s.RequiredCompleted++
		}
	}
	if s.Required > 0 {
		s.Percent = float64(s.RequiredCompleted) / float64(s.Required) * 100
	}
	return s
}
