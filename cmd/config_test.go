package cmd

import (
	"strings"
	"testing"

	"github.com/PolarWolf314/waypoint/internal/configs"
)

func TestConfigSetAndShow(t *testing.T) {
	setupTestProject(t)
	mustRun(t, "init")

	mustRun(t, "config", "set", "workflow.clear_completion_on_regression", "true")
	mustRun(t, "config", "set", "session.user", "jane.smith", "--user")

	var cfg configs.Config
	decodeJSON(t, mustRun(t, "config", "show", "--json"), &cfg)
	if !cfg.Workflow.ClearCompletionOnRegression {
		t.Error("expected clear_completion_on_regression to be set")
	}
	if cfg.Session.User != "jane.smith" {
		t.Errorf("expected session user from the user config, got %q", cfg.Session.User)
	}

	output := mustRun(t, "config", "show")
	if !strings.Contains(output, "workflow.clear_completion_on_regression:") || !strings.Contains(output, "jane.smith") {
		t.Errorf("unexpected config output: %s", output)
	}

	if _, err := runCommand(t, "config", "set", "store.driver", "csv"); err == nil {
		t.Error("expected an error for an unknown driver")
	}
}

func TestClearCompletionOnRegressionFromConfig(t *testing.T) {
	setupTestProject(t)
	mustRun(t, "init")
	createAcmeRecord(t)
	mustRun(t, "config", "set", "workflow.clear_completion_on_regression", "true")

	mustRun(t, "step", "update", "1000", "3", "--status", "completed", "--as", "john.doe")
	output := mustRun(t, "step", "update", "1000", "3", "--status", "not started", "--as", "john.doe")
	if !strings.Contains(output, "Completion details were cleared") {
		t.Errorf("expected completion to be cleared: %s", output)
	}
}
