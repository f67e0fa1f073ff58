// Package bootstrap makes sure the workflow store exists and holds every
// required table before any other operation touches it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/store"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// Options configures EnsureStoreReady.
type Options struct {
	// Force regenerates the store even when it is complete.
	Force bool

	// Now is used for the backup suffix. Defaults to time.Now.
	Now func() time.Time
}

// Result describes what EnsureStoreReady did.
type Result struct {
	// Created is true when there was no store and a new one was written.
	Created bool

	// Regenerated is true when an existing store was replaced with seed data.
	Regenerated bool

	// Repaired is true when a missing Workflow_Status table was added back
	// without touching the other tables.
	Repaired bool

	// Reason explains why the store was created, regenerated or repaired.
	Reason string

	// MissingTables lists the tables that were absent.
	MissingTables []string

	// BackupPath is where the previous contents were moved on regeneration.
	BackupPath string
}

// Changed reports whether anything was written.
func (r *Result) Changed() bool {
	return r.Created || r.Regenerated || r.Repaired
}

// EnsureStoreReady checks the store and brings it into a usable state.
//
// A missing store is created with seed data. An unreadable store, or one
// lacking any of Records, Users or Steps, is regenerated with seed data
// after its current contents are moved to a backup. A store lacking only
// Workflow_Status gets an empty one. A complete store is left alone.
//
// Returns ErrPersistence if the store cannot be written.
func EnsureStoreReady(ctx context.Context, s store.DocumentStore, opts Options) (*Result, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	layout, inspectErr := s.Inspect(ctx)
	if inspectErr != nil && !errors.Is(inspectErr, kerrors.ErrStoreMissingOrCorrupt) {
		return nil, fmt.Errorf("inspecting store: %w", inspectErr)
	}

	result := &Result{}
	switch {
	case opts.Force:
		result.Regenerated = layout.Exists
		result.Created = !layout.Exists
		result.Reason = "regeneration requested"

	case !layout.Exists:
		result.Created = true
		result.Reason = "store file does not exist"
		result.MissingTables = append([]string(nil), tables.Names...)

	case inspectErr != nil:
		result.Regenerated = true
		result.Reason = fmt.Sprintf("store file is unreadable: %v", inspectErr)

	default:
		result.MissingTables = layout.Missing(tables.Names)
		missingRequired := layout.Missing(tables.Required)
		switch {
		case len(missingRequired) > 0:
			result.Regenerated = true
			result.Reason = fmt.Sprintf("missing tables %v", missingRequired)
		case len(result.MissingTables) > 0:
			return repair(ctx, s, result)
		default:
			return result, nil
		}
	}

	if result.Regenerated {
		backup, err := s.Discard(ctx, ".bak-"+now().Format("20060102150405"))
		if err != nil {
			return nil, err
		}
		result.BackupPath = backup
	}
	if _, err := s.Save(ctx, Seed(), ""); err != nil {
		return nil, fmt.Errorf("writing seed data to %s: %w", s.Location(), err)
	}
	return result, nil
}

// repair adds the missing Workflow_Status table while keeping everything else.
func repair(ctx context.Context, s store.DocumentStore, result *Result) (*Result, error) {
	t, rev, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading store for repair: %w", err)
	}
	if _, err := s.Save(ctx, t, rev); err != nil {
		return nil, fmt.Errorf("repairing %s: %w", s.Location(), err)
	}
	result.Repaired = true
	result.Reason = fmt.Sprintf("missing tables %v", result.MissingTables)
	return result, nil
}
