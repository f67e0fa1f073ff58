package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/store"
)

func noEnv(string) string { return "" }

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(&Settings{}, noEnv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Store.Path != DefaultStorePath {
		t.Errorf("Expected store path %q, got %q", DefaultStorePath, cfg.Store.Path)
	}
	if cfg.Attachments.Dir != DefaultAttachmentsDir {
		t.Errorf("Expected attachments dir %q, got %q", DefaultAttachmentsDir, cfg.Attachments.Dir)
	}
	if cfg.Workflow.ClearCompletionOnRegression {
		t.Error("completion metadata should be kept by default")
	}
	if cfg.Store.LastWriterWins {
		t.Error("conditional writes should be on by default")
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "user", ConfigFileName)
	projectPath := filepath.Join(dir, "project", ".waypoint", ConfigFileName)

	writeConfig(t, userPath, `
[session]
user = "jane.smith"

[store]
path = "user.xlsx"
`)
	writeConfig(t, projectPath, `
[store]
path = "data/workflow.db"
driver = "sqlite"

[workflow]
clear_completion_on_regression = true
`)

	settings := &Settings{UserConfigPath: userPath, ProjectConfigPath: projectPath}

	cfg, err := Load(settings, noEnv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != "data/workflow.db" {
		t.Errorf("project file should override user file, got %q", cfg.Store.Path)
	}
	if cfg.Session.User != "jane.smith" {
		t.Errorf("keys absent from the project file should keep the user value, got %q", cfg.Session.User)
	}
	if !cfg.Workflow.ClearCompletionOnRegression {
		t.Error("expected clear_completion_on_regression from project file")
	}
	if cfg.Attachments.Dir != DefaultAttachmentsDir {
		t.Errorf("unset keys should keep defaults, got %q", cfg.Attachments.Dir)
	}

	env := map[string]string{EnvStore: "/tmp/override.xlsx", EnvUser: "admin"}
	cfg, err = Load(settings, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != "/tmp/override.xlsx" {
		t.Errorf("environment should override files, got %q", cfg.Store.Path)
	}
	if cfg.Session.User != "admin" {
		t.Errorf("expected session user from environment, got %q", cfg.Session.User)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeConfig(t, path, "[store]\ndriver = \"csv\"\n")

	_, err := Load(&Settings{ProjectConfigPath: path}, noEnv)
	if !errors.Is(err, kerrors.ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeConfig(t, path, "[store\npath = ")

	if _, err := Load(&Settings{ProjectConfigPath: path}, noEnv); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestStoreOptionsResolvesRelativePaths(t *testing.T) {
	cfg := Default()
	cfg.Store.Driver = store.DriverSQLite
	cfg.Store.LastWriterWins = true

	opts := cfg.StoreOptions("/projects/acme")
	if opts.Path != filepath.Join("/projects/acme", DefaultStorePath) {
		t.Errorf("unexpected store path %q", opts.Path)
	}
	if opts.Driver != store.DriverSQLite || !opts.LastWriterWins {
		t.Errorf("unexpected store options %+v", opts)
	}

	cfg.Store.Path = "/data/shared.xlsx"
	if got := cfg.StoreOptions("/projects/acme").Path; got != "/data/shared.xlsx" {
		t.Errorf("absolute paths should be kept, got %q", got)
	}

	if got := cfg.AttachmentsDir("/projects/acme"); got != filepath.Join("/projects/acme", DefaultAttachmentsDir) {
		t.Errorf("unexpected attachments dir %q", got)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"store.path", "other.xlsx", false},
		{"store.driver", "sqlite", false},
		{"store.driver", "csv", true},
		{"store.last_writer_wins", "true", false},
		{"store.last_writer_wins", "maybe", true},
		{"workflow.clear_completion_on_regression", "yes", true},
		{"workflow.clear_completion_on_regression", "1", false},
		{"session.user", "admin", false},
		{"attachments.dir", "files", false},
		{"nope", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}

	if !cfg.Workflow.ClearCompletionOnRegression || cfg.Session.User != "admin" || cfg.Attachments.Dir != "files" {
		t.Errorf("unexpected config after Set: %+v", cfg)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := ProjectConfigPath(t.TempDir())

	cfg := Default()
	cfg.Session.User = "bob.wilson"
	cfg.Store.Driver = store.DriverXLSX
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestResolveSettings(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".waypoint"), 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}
	nested := filepath.Join(root, "reports")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	s, err := ResolveSettings(nested)
	if err != nil {
		t.Fatalf("ResolveSettings failed: %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(s.ProjectPath)
	if got != want {
		t.Errorf("Expected project %s, got %s", want, s.ProjectPath)
	}
	if filepath.Base(s.ProjectConfigPath) != ConfigFileName {
		t.Errorf("unexpected project config path %s", s.ProjectConfigPath)
	}
	if s.BaseDir(nested) != s.ProjectPath {
		t.Error("BaseDir should be the project root inside a project")
	}

	outside := &Settings{}
	if outside.BaseDir(nested) != nested {
		t.Error("BaseDir should fall back to the given dir outside a project")
	}
}
