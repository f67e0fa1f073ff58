// Package tables defines the four tables kept in the workflow store and the
// closed enumerations used in their cells.
//
// The string values of Role, RequiredRole and Status, as well as the column
// names listed in Columns, are the wire contract with existing store files
// and must not change.
//
// # Tables
//
//   - Records: one row per tracked client engagement
//   - Users: the people who act on records, with their role
//   - Steps: the ordered checklist templates applied to new records
//   - Workflow_Status: the state of one step for one record
//
// A Tables value holds all four. Stores always read and write the four
// together, so a Tables value is the unit of persistence.
package tables
