package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/blake2b"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// XLSX stores the tables as sheets of one workbook.
type XLSX struct {
	path           string
	lastWriterWins bool
}

// NewXLSX returns a workbook store backed by path.
func NewXLSX(path string, lastWriterWins bool) *XLSX {
	return &XLSX{path: path, lastWriterWins: lastWriterWins}
}

func (s *XLSX) Location() string { return s.path }

func (s *XLSX) Close() error { return nil }

func (s *XLSX) Inspect(ctx context.Context) (Layout, error) {
	if err := ctx.Err(); err != nil {
		return Layout{}, err
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return Layout{}, nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return Layout{Exists: true}, corruptErr(s.path, err)
	}
	defer f.Close()
	return Layout{Exists: true, Tables: f.GetSheetList()}, nil
}

func (s *XLSX) Load(ctx context.Context) (*tables.Tables, Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	rev, err := s.revision()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", corruptErr(s.path, err)
		}
		return nil, "", fmt.Errorf("reading %s: %w", s.path, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, "", corruptErr(s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	t := &tables.Tables{}
	for _, name := range tables.Names {
		if !slices.Contains(sheets, name) {
			if slices.Contains(tables.Required, name) {
				return nil, "", fmt.Errorf("%w: %s: sheet %s is missing", kerrors.ErrStoreMissingOrCorrupt, s.path, name)
			}
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, "", corruptErr(s.path, err)
		}
		if len(rows) == 0 {
			continue
		}
		if err := t.Decode(name, rows[0], rows[1:]); err != nil {
			return nil, "", err
		}
	}
	return t, rev, nil
}

func (s *XLSX) Save(ctx context.Context, t *tables.Tables, base Revision) (Revision, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if base != "" && !s.lastWriterWins {
		current, err := s.revision()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", persistErr("checking revision", err)
		}
		if current != base {
			return "", fmt.Errorf("%w: %s", kerrors.ErrConflict, s.path)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range t.Encode() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return "", persistErr("naming sheet", err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return "", persistErr("adding sheet", err)
		}
		if err := writeSheet(f, table); err != nil {
			return "", persistErr("writing sheet "+table.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := s.replaceFile(f); err != nil {
		return "", persistErr("writing "+s.path, err)
	}

	rev, err := s.revision()
	if err != nil {
		return "", persistErr("reading revision", err)
	}
	return rev, nil
}

func (s *XLSX) Discard(ctx context.Context, suffix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	backup := s.path + suffix
	if err := os.Rename(s.path, backup); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", persistErr("moving "+s.path+" aside", err)
	}
	return backup, nil
}

func writeSheet(f *excelize.File, table tables.Table) error {
	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return err
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// replaceFile writes the workbook next to the target and renames it into
// place, so readers never observe a partially written file.
func (s *XLSX) replaceFile(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".waypoint-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// revision hashes the workbook bytes.
func (s *XLSX) revision() (Revision, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return Revision(hex.EncodeToString(h.Sum(nil))), nil
}
