package ui

import (
	"strings"

	"github.com/PolarWolf314/waypoint/internal/tables"
)

// StatusIcon returns a colored marker for a workflow status.
func StatusIcon(s tables.Status) string {
	switch s {
	case tables.StatusCompleted:
		return Success.Sprint("✓")
	case tables.StatusInProgress:
		return Warning.Sprint("◐")
	case tables.StatusNotStarted:
		return Muted.Sprint("·")
	default:
		return Error.Sprint("?")
	}
}

// StatusLabel returns the status literal colored like its icon.
func StatusLabel(s tables.Status) string {
	switch s {
	case tables.StatusCompleted:
		return Success.Sprint(string(s))
	case tables.StatusInProgress:
		return Warning.Sprint(string(s))
	case tables.StatusNotStarted:
		return string(s)
	default:
		return Error.Sprint(string(s))
	}
}

// RoleBadge renders a role. Unknown roles are flagged.
func RoleBadge(r tables.Role) string {
	switch r {
	case tables.RoleLead:
		return Success.Sprint(string(r))
	case tables.RoleManager:
		return Info.Sprint(string(r))
	case tables.RoleDeveloper, tables.RoleBusiness:
		return string(r)
	default:
		return Error.Sprintf("%s?", r)
	}
}

// ProgressBar draws a fixed-width bar for a percentage in [0, 100].
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	rest := strings.Repeat("░", width-filled)
	if !noColor() {
		rest = Muted.color.Sprint(rest)
	}
	return Success.Sprint(strings.Repeat("█", filled)) + rest
}
