// Package store persists the four workflow tables.
//
// A DocumentStore exposes whole-table operations only: Load reads every table
// and Save rewrites every table. There is no row-level API. Three drivers are
// provided:
//
//   - XLSX: a single workbook with one sheet per table, compatible with
//     workbooks produced by spreadsheet tools
//   - SQLite: a single SQLite database with one SQL table per table, where a
//     save is one transaction
//   - Memory: an in-process store for tests
//
// # Revisions
//
// Load returns a Revision describing the state that was read. Passing it back
// to Save makes the write conditional: if another writer saved in between,
// Save returns ErrConflict instead of silently discarding that writer's work.
// An empty base revision, or a store opened with LastWriterWins, writes
// unconditionally.
package store
