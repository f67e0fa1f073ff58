package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// Memory keeps the tables in process. It is used by tests and can be told
// to fail writes.
type Memory struct {
	mu       sync.Mutex
	data     *tables.Tables
	present  []string
	revision int

	// SaveErr, when set, makes every Save fail with ErrPersistence.
	SaveErr error

	// Saves counts successful writes.
	Saves int
}

// NewMemory returns a store holding t. A nil t behaves like a missing file.
func NewMemory(t *tables.Tables) *Memory {
	m := &Memory{}
	if t != nil {
		m.data = t.Clone()
		m.present = slices.Clone(tables.Names)
	}
	return m
}

// DropTable removes a table from the layout, simulating an incomplete file.
func (m *Memory) DropTable(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.present = slices.DeleteFunc(m.present, func(n string) bool { return n == name })
}

// Snapshot returns a copy of the stored tables.
func (m *Memory) Snapshot() *tables.Tables {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone()
}

func (m *Memory) Location() string { return "memory" }

func (m *Memory) Close() error { return nil }

func (m *Memory) Inspect(ctx context.Context) (Layout, error) {
	if err := ctx.Err(); err != nil {
		return Layout{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return Layout{}, nil
	}
	return Layout{Exists: true, Tables: slices.Clone(m.present)}, nil
}

func (m *Memory) Load(ctx context.Context) (*tables.Tables, Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, "", fmt.Errorf("%w: memory store is empty", kerrors.ErrStoreMissingOrCorrupt)
	}
	for _, name := range tables.Required {
		if !slices.Contains(m.present, name) {
			return nil, "", fmt.Errorf("%w: table %s is missing", kerrors.ErrStoreMissingOrCorrupt, name)
		}
	}
	t := m.data.Clone()
	if !slices.Contains(m.present, tables.WorkflowStatusTable) {
		t.Status = nil
	}
	return t, m.rev(), nil
}

func (m *Memory) Save(ctx context.Context, t *tables.Tables, base Revision) (Revision, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return "", persistErr("memory", m.SaveErr)
	}
	if base != "" && base != m.rev() {
		return "", fmt.Errorf("%w: memory", kerrors.ErrConflict)
	}
	m.data = t.Clone()
	m.present = slices.Clone(tables.Names)
	m.revision++
	m.Saves++
	return m.rev(), nil
}

func (m *Memory) Discard(ctx context.Context, suffix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.present = nil
	return "", nil
}

func (m *Memory) rev() Revision {
	return Revision(strconv.Itoa(m.revision))
}
