package errors

import (
	"errors"
	"fmt"
)

// Store errors indicate the backing document cannot be used or written.
var (
	// ErrStoreMissingOrCorrupt indicates the store file is absent, unreadable,
	// or lacks one of the required tables.
	ErrStoreMissingOrCorrupt = errors.New("workflow store is missing or corrupt")

	// ErrPersistence indicates the combined write of all tables failed.
	// In-memory changes made by the failed operation are discarded.
	ErrPersistence = errors.New("failed to persist workflow tables")

	// ErrConflict indicates the store changed after it was read, so the write
	// was refused instead of overwriting another writer's changes.
	ErrConflict = errors.New("workflow store was modified by another writer")

	// ErrUnknownDriver indicates the configured store driver is not supported.
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Access errors indicate the acting user may not perform the operation.
var (
	// ErrPermissionDenied indicates the acting user's role does not satisfy
	// the required role.
	ErrPermissionDenied = errors.New("permission denied")
)

// Lookup errors indicate a referenced entity could not be found.
var (
	// ErrNotFound is the general lookup failure wrapped by the errors below.
	ErrNotFound = errors.New("not found")

	// ErrRecordNotFound indicates no record has the given Unique_ID.
	ErrRecordNotFound = fmt.Errorf("record %w", ErrNotFound)

	// ErrStepNotFound indicates no step template has the given Step_ID.
	ErrStepNotFound = fmt.Errorf("step %w", ErrNotFound)

	// ErrStatusRowNotFound indicates the record has no status row for the step.
	ErrStatusRowNotFound = fmt.Errorf("workflow status row %w", ErrNotFound)

	// ErrUserNotFound indicates no user has the given username.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
)

// Input errors indicate malformed values supplied by the caller.
var (
	// ErrMissingField indicates a required field was empty.
	ErrMissingField = errors.New("required field is empty")

	// ErrInvalidStatus indicates the value is not a known workflow status.
	ErrInvalidStatus = errors.New("invalid workflow status")

	// ErrInvalidRole indicates the value is not a known user role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidEmail indicates the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrDuplicateKey indicates two rows share a key that must be unique.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")
)
