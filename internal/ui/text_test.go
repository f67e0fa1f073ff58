package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/PolarWolf314/waypoint/internal/tables"
)

func forceColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })
}

func TestFormatterWithColor(t *testing.T) {
	forceColor(t)

	result := Code.Sprint("waypoint init")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "waypoint init", "`waypoint init`"},
		{"Path has no decoration", Path, "workflow_data.xlsx", "workflow_data.xlsx"},
		{"Flag has no decoration", Flag, "--status", "--status"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "jane.smith", "'jane.smith'"},
		{"Muted adds parentheses", Muted, "optional", "(optional)"},
		{"Header adds brackets", Header, "Development", "[Development]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Code.Sprintf("waypoint record show %d", 1000)
	want := "`waypoint record show 1000`"
	if result != want {
		t.Errorf("Code.Sprintf() = %q, want %q", result, want)
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
}

func TestStatusIcons(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		status tables.Status
		want   string
	}{
		{tables.StatusCompleted, "✓"},
		{tables.StatusInProgress, "◐"},
		{tables.StatusNotStarted, "(·)"},
		{tables.Status("Blocked"), "?"},
	}

	for _, tt := range tests {
		if got := StatusIcon(tt.status); got != tt.want {
			t.Errorf("StatusIcon(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRoleBadge(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := RoleBadge(tables.RoleLead); got != "Lead" {
		t.Errorf("RoleBadge(Lead) = %q", got)
	}
	if got := RoleBadge(tables.Role("Auditor")); got != "Auditor?" {
		t.Errorf("RoleBadge(Auditor) = %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		percent float64
		want    string
	}{
		{0, "░░░░"},
		{50, "██░░"},
		{100, "████"},
		{150, "████"},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.percent, 4); got != tt.want {
			t.Errorf("ProgressBar(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
