package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"testing"
)

// setupTestProject creates an empty working directory with isolated user
// config and changes into it for the duration of the test.
func setupTestProject(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("NO_COLOR", "1")
	t.Setenv("WAYPOINT_STORE", "")
	t.Setenv("WAYPOINT_USER", "")

	projectDir := t.TempDir()
	if err := os.Chdir(projectDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})

	return projectDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runCommand executes waypoint with args from a clean flag state.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	if args == nil {
		// cobra falls back to os.Args for nil args.
		args = []string{}
	}
	RootCmd.SetArgs(args)
	return captureOutput(RootCmd.Execute)
}

// mustRun executes waypoint and fails the test on error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCommand(t, args...)
	if err != nil {
		t.Fatalf("waypoint %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return output
}

// decodeJSON decodes the first JSON value in output into v.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.NewDecoder(strings.NewReader(output)).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON output: %v\nOutput: %s", err, output)
	}
}
