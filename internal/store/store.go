package store

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// Revision identifies the store contents observed by Load.
type Revision string

// Layout describes what the backing file currently holds.
type Layout struct {
	// Exists is false when there is no backing file at all.
	Exists bool

	// Tables lists the table names present in the file.
	Tables []string
}

// Missing returns the names from want that are absent from the layout.
func (l Layout) Missing(want []string) []string {
	var missing []string
	for _, name := range want {
		if !slices.Contains(l.Tables, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// DocumentStore reads and writes all four tables as one document.
type DocumentStore interface {
	// Location describes where the data lives, for display.
	Location() string

	// Inspect reports which tables exist. An unreadable store returns an
	// error wrapping ErrStoreMissingOrCorrupt.
	Inspect(ctx context.Context) (Layout, error)

	// Load reads every table. A missing Workflow_Status table loads as empty.
	Load(ctx context.Context) (*tables.Tables, Revision, error)

	// Save rewrites every table. See the package documentation for how base
	// is used.
	Save(ctx context.Context, t *tables.Tables, base Revision) (Revision, error)

	// Discard moves the current contents aside so the store can be created
	// again, returning where the old contents went ("" if nowhere).
	Discard(ctx context.Context, suffix string) (string, error)

	// Close releases any held resources.
	Close() error
}

// Supported drivers.
const (
	DriverXLSX   = "xlsx"
	DriverSQLite = "sqlite"
)

// Drivers lists the supported driver names.
var Drivers = []string{DriverXLSX, DriverSQLite}

// Options configures Open.
type Options struct {
	// Driver selects the implementation. When empty it is inferred from the
	// file extension, defaulting to xlsx.
	Driver string

	// Path is the backing file.
	Path string

	// LastWriterWins disables the conditional write check.
	LastWriterWins bool
}

// Open returns the DocumentStore selected by opts.
func Open(opts Options) (DocumentStore, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: store path", kerrors.ErrMissingField)
	}
	driver := opts.Driver
	if driver == "" {
		driver = DriverFor(opts.Path)
	}
	switch driver {
	case DriverXLSX:
		return NewXLSX(opts.Path, opts.LastWriterWins), nil
	case DriverSQLite:
		return NewSQLite(opts.Path, opts.LastWriterWins), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", kerrors.ErrUnknownDriver, driver, strings.Join(Drivers, ", "))
	}
}

// DriverFor infers the driver from a file name.
func DriverFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return DriverSQLite
	default:
		return DriverXLSX
	}
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", kerrors.ErrPersistence, op, err)
}

func corruptErr(location string, err error) error {
	return fmt.Errorf("%w: %s: %v", kerrors.ErrStoreMissingOrCorrupt, location, err)
}
