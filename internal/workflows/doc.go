// Package workflows implements the operations of the workflow tracker.
//
// Each operation reloads every table, applies its change in memory and
// writes every table back through a store.DocumentStore. The write is
// conditional on the revision that was read, so a concurrent writer causes
// ErrConflict rather than a lost update.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves the acting user with Login
//   - Calls the appropriate Tracker method
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating input
//   - Enforcing the role gate of each step
//   - Mutating the tables
//   - Persisting the result
//
// # Available Workflows
//
//   - CreateRecord: adds a record and one status row per step template
//   - UpdateStep: changes status and assignee, subject to the role gate
//   - SetComment: overwrites the comment of a step
//   - AttachFiles: stores files against a step
//   - BrowseRecords: filters records and returns cascading facets
//   - Board: groups a record's steps by header with a progress summary
//   - ReplaceUsers, ReplaceSteps: admin edits of the reference tables
//   - Login: resolves the acting user
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific conditions:
//
//	result, err := tracker.UpdateStep(ctx, opts)
//	if errors.Is(err, kerrors.ErrPermissionDenied) {
//	    // Tell the user which role the step needs
//	}
//
// Workflows never log and never retry.
//
// # Context Usage
//
// All workflow methods accept a context.Context as their first parameter.
package workflows
