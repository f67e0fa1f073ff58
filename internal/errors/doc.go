// Package errors provides typed error values for the waypoint application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: the backing document is missing, corrupt, or could not
//     be written (ErrStoreMissingOrCorrupt, ErrPersistence, ErrConflict)
//   - Access errors: the acting user's role does not satisfy a gate
//     (ErrPermissionDenied)
//   - Lookup errors: a referenced record, step, status row or user does not
//     exist (ErrNotFound and its refinements)
//   - Input errors: malformed values supplied by the caller
//
// # Usage
//
// Lookup errors wrap ErrNotFound, so callers may match either the specific
// or the general error:
//
//	_, err := tracker.UpdateStep(ctx, opts)
//	if errors.Is(err, kerrors.ErrNotFound) {
//	    // record, step, row or user is missing
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: record %d", kerrors.ErrRecordNotFound, id)
package errors
