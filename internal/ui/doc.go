// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content by type (code, paths, errors, etc.). When
// colors are available, content is colorized. When NO_COLOR is set or the
// terminal doesn't support colors, text decorations are used instead.
//
//	ui.Code.Sprint("waypoint init")           // Commands
//	ui.Path.Sprint("workflow_data.xlsx")      // File paths
//	ui.Highlight.Sprint("jane.smith")         // User values
//	ui.StatusIcon(tables.StatusCompleted)     // ✓
//	ui.RoleBadge(tables.RoleLead)             // Lead
//
// When colors are disabled:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Header: [brackets]
//   - Others: no decoration
package ui
