package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/tables"
)

// metaTable holds the revision counter used for conditional writes.
const metaTable = "Meta"

// integerColumns are stored as SQL INTEGER; every other column is TEXT.
var integerColumns = map[string]bool{
	"Unique_ID":           true,
	"Step_ID":             true,
	"Attachment_Required": true,
	"Optional":            true,
}

// SQLite stores the tables in a single SQLite database file.
type SQLite struct {
	path           string
	lastWriterWins bool
	db             *sql.DB
}

// NewSQLite returns a database store backed by path. The database is opened
// on first use.
func NewSQLite(path string, lastWriterWins bool) *SQLite {
	return &SQLite{path: path, lastWriterWins: lastWriterWins}
}

func (s *SQLite) Location() string { return s.path }

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLite) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s.db = db
	return db, nil
}

func (s *SQLite) Inspect(ctx context.Context) (Layout, error) {
	if err := ctx.Err(); err != nil {
		return Layout{}, err
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return Layout{}, nil
	}
	names, err := s.tableNames(ctx)
	if err != nil {
		return Layout{Exists: true}, corruptErr(s.path, err)
	}
	return Layout{Exists: true, Tables: names}, nil
}

func (s *SQLite) tableNames(ctx context.Context) ([]string, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) Load(ctx context.Context) (*tables.Tables, Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(s.path); err != nil {
		return nil, "", corruptErr(s.path, err)
	}
	present, err := s.tableNames(ctx)
	if err != nil {
		return nil, "", corruptErr(s.path, err)
	}

	t := &tables.Tables{}
	for _, name := range tables.Names {
		if !slices.Contains(present, name) {
			if slices.Contains(tables.Required, name) {
				return nil, "", fmt.Errorf("%w: %s: table %s is missing", kerrors.ErrStoreMissingOrCorrupt, s.path, name)
			}
			continue
		}
		header, cells, err := s.readTable(ctx, name)
		if err != nil {
			return nil, "", corruptErr(s.path, err)
		}
		if err := t.Decode(name, header, cells); err != nil {
			return nil, "", err
		}
	}

	rev := Revision("0")
	if slices.Contains(present, metaTable) {
		var n int64
		if err := s.db.QueryRowContext(ctx, `SELECT revision FROM "Meta" LIMIT 1`).Scan(&n); err == nil {
			rev = Revision(strconv.FormatInt(n, 10))
		}
	}
	return t, rev, nil
}

func (s *SQLite) readTable(ctx context.Context, name string) ([]string, [][]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY rowid`, quote(name)))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var cells [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(header))
		for i, v := range raw {
			row[i] = v.String
		}
		cells = append(cells, row)
	}
	return header, cells, rows.Err()
}

func (s *SQLite) Save(ctx context.Context, t *tables.Tables, base Revision) (Revision, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	db, err := s.open(ctx)
	if err != nil {
		return "", persistErr("opening "+s.path, err)
	}
	if err := s.ensureSchema(ctx); err != nil {
		return "", persistErr("creating schema", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", persistErr("starting transaction", err)
	}
	defer tx.Rollback()

	if base != "" && !s.lastWriterWins {
		expected, err := strconv.ParseInt(string(base), 10, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %s: foreign revision %q", kerrors.ErrConflict, s.path, base)
		}
		res, err := tx.ExecContext(ctx, `UPDATE "Meta" SET revision = revision + 1 WHERE revision = ?`, expected)
		if err != nil {
			return "", persistErr("bumping revision", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return "", fmt.Errorf("%w: %s", kerrors.ErrConflict, s.path)
		}
	} else if _, err := tx.ExecContext(ctx, `UPDATE "Meta" SET revision = revision + 1`); err != nil {
		return "", persistErr("bumping revision", err)
	}

	for _, table := range t.Encode() {
		if err := writeTable(ctx, tx, table); err != nil {
			return "", persistErr("writing table "+table.Name, err)
		}
	}

	var n int64
	if err := tx.QueryRowContext(ctx, `SELECT revision FROM "Meta" LIMIT 1`).Scan(&n); err != nil {
		return "", persistErr("reading revision", err)
	}
	if err := tx.Commit(); err != nil {
		return "", persistErr("committing", err)
	}
	return Revision(strconv.FormatInt(n, 10)), nil
}

func (s *SQLite) Discard(ctx context.Context, suffix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.Close(); err != nil {
		return "", persistErr("closing "+s.path, err)
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

func (s *SQLite) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS "Meta" (revision INTEGER NOT NULL)`,
		`INSERT INTO "Meta" (revision) SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM "Meta")`,
	}
	for _, name := range tables.Names {
		var defs []string
		for _, col := range tables.Columns[name] {
			kind := "TEXT"
			if integerColumns[col] {
				kind = "INTEGER"
			}
			defs = append(defs, quote(col)+" "+kind)
		}
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, quote(name), strings.Join(defs, ", ")))
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(ctx context.Context, tx *sql.Tx, table tables.Table) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+quote(table.Name)); err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		return nil
	}

	cols := make([]string, len(table.Columns))
	marks := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = quote(c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quote(table.Name), strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range table.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			if b, ok := v.(bool); ok {
				args[i] = boolInt(b)
				continue
			}
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
