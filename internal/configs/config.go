package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/store"
)

// Environment variables read by ApplyEnv.
const (
	EnvStore = "WAYPOINT_STORE"
	EnvUser  = "WAYPOINT_USER"
)

// DefaultStorePath is the store file name used when nothing else is set.
const DefaultStorePath = "workflow_data.xlsx"

// DefaultAttachmentsDir is where attachments go when nothing else is set.
const DefaultAttachmentsDir = "attachments"

type Config struct {
	Store       StoreConfig       `toml:"store" json:"store"`
	Attachments AttachmentsConfig `toml:"attachments" json:"attachments"`
	Workflow    WorkflowConfig    `toml:"workflow" json:"workflow"`
	Session     SessionConfig     `toml:"session" json:"session"`
}

type StoreConfig struct {
	// Path is the backing file. Relative paths resolve against the project.
	Path string `toml:"path" json:"path"`

	// Driver is one of store.Drivers. Empty infers it from Path.
	Driver string `toml:"driver,omitempty" json:"driver"`

	// LastWriterWins disables the conditional write check.
	LastWriterWins bool `toml:"last_writer_wins,omitempty" json:"last_writer_wins"`
}

type AttachmentsConfig struct {
	Dir string `toml:"dir" json:"dir"`
}

type WorkflowConfig struct {
	// ClearCompletionOnRegression clears completion metadata when a
	// completed step is moved back to another status.
	ClearCompletionOnRegression bool `toml:"clear_completion_on_regression,omitempty" json:"clear_completion_on_regression"`
}

type SessionConfig struct {
	// User is the default acting username.
	User string `toml:"user,omitempty" json:"user"`
}

// Default returns the configuration used when no file sets anything.
func Default() *Config {
	return &Config{
		Store:       StoreConfig{Path: DefaultStorePath},
		Attachments: AttachmentsConfig{Dir: DefaultAttachmentsDir},
	}
}

// Load builds the effective configuration: defaults, then the user config
// file, then the project config file, then the environment. Missing files
// are skipped.
func Load(s *Settings, getenv func(string) string) (*Config, error) {
	cfg := Default()
	for _, path := range []string{s.UserConfigPath, s.ProjectConfigPath} {
		if err := loadIfExists(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadIfExists(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := LoadTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from WAYPOINT_STORE and WAYPOINT_USER.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvStore)); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvUser)); v != "" {
		c.Session.User = v
	}
}

// Validate checks values that cannot be fixed later.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("%w: store.path", kerrors.ErrMissingField)
	}
	if c.Store.Driver != "" && !slices.Contains(store.Drivers, c.Store.Driver) {
		return fmt.Errorf("%w: %q (supported: %s)", kerrors.ErrUnknownDriver, c.Store.Driver, strings.Join(store.Drivers, ", "))
	}
	return nil
}

// StoreOptions returns the store options with Path made absolute against base.
func (c *Config) StoreOptions(base string) store.Options {
	return store.Options{
		Driver:         c.Store.Driver,
		Path:           absolute(base, c.Store.Path),
		LastWriterWins: c.Store.LastWriterWins,
	}
}

// AttachmentsDir returns the attachments directory made absolute against base.
func (c *Config) AttachmentsDir(base string) string {
	return absolute(base, c.Attachments.Dir)
}

func absolute(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Set assigns a config value by dotted key, as used by "waypoint config set".
// c is left unchanged when the value is rejected.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "store.path":
		next.Store.Path = value
	case "store.driver":
		next.Store.Driver = value
	case "store.last_writer_wins":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("store.last_writer_wins: %w", err)
		}
		next.Store.LastWriterWins = b
	case "attachments.dir":
		next.Attachments.Dir = value
	case "workflow.clear_completion_on_regression":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("workflow.clear_completion_on_regression: %w", err)
		}
		next.Workflow.ClearCompletionOnRegression = b
	case "session.user":
		next.Session.User = value
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Keys lists the keys accepted by Set.
var Keys = []string{
	"store.path",
	"store.driver",
	"store.last_writer_wins",
	"attachments.dir",
	"workflow.clear_completion_on_regression",
	"session.user",
}

// LoadFile reads a single config file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadIfExists(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveFile writes cfg to path.
func SaveFile(path string, cfg *Config) error {
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
