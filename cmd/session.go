package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/waypoint/internal/attachments"
	"github.com/PolarWolf314/waypoint/internal/bootstrap"
	"github.com/PolarWolf314/waypoint/internal/configs"
	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
	"github.com/PolarWolf314/waypoint/internal/store"
	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/utils"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

// session is what every store-backed command works with.
type session struct {
	Settings *configs.Settings
	Config   *configs.Config
	BaseDir  string
	Store    store.DocumentStore
	Tracker  *workflows.Tracker
}

// loadConfig resolves the effective configuration: files and environment
// from configs.Load, then the persistent flags.
func loadConfig() (*configs.Settings, *configs.Config, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get working directory: %w", err)
	}

	settings, err := configs.ResolveSettings(wd)
	if err != nil {
		return nil, nil, "", err
	}
	Logger.Debugf("Project path: %q, project config: %q, user config: %q",
		settings.ProjectPath, settings.ProjectConfigPath, settings.UserConfigPath)

	cfg, err := configs.Load(settings, os.Getenv)
	if err != nil {
		return nil, nil, "", err
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if driver != "" {
		cfg.Store.Driver = string(driver)
	}
	return settings, cfg, settings.BaseDir(wd), nil
}

// openSession opens the configured store and makes sure it is usable. A
// store that had to be created, repaired or regenerated is reported with a
// warning so nobody loses track of a reset.
func openSession(ctx context.Context) (*session, error) {
	settings, cfg, base, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := cfg.StoreOptions(base)
	Logger.Infof("Using %s store at %s", driverName(opts), opts.Path)
	s, err := store.Open(opts)
	if err != nil {
		return nil, err
	}

	result, err := bootstrap.EnsureStoreReady(ctx, s, bootstrap.Options{})
	if err != nil {
		s.Close()
		return nil, err
	}
	reportBootstrap(result, s.Location(), true)

	tracker := workflows.New(s)
	tracker.Attachments = attachments.New(cfg.AttachmentsDir(base))
	tracker.ClearCompletionOnRegression = cfg.Workflow.ClearCompletionOnRegression

	return &session{
		Settings: settings,
		Config:   cfg,
		BaseDir:  base,
		Store:    s,
		Tracker:  tracker,
	}, nil
}

func (s *session) Close() {
	if err := s.Store.Close(); err != nil {
		Logger.Warnf("Failed to close store: %v", err)
	}
}

// identitySource names where the acting username came from.
type identitySource string

const (
	sourceFlag   identitySource = "--as flag"
	sourceConfig identitySource = "WAYPOINT_USER / session.user"
	sourceSystem identitySource = "system username"
)

// actorName picks the acting username: --as, then WAYPOINT_USER or
// session.user, then the operating system user.
func (s *session) actorName() (string, identitySource, error) {
	if actAs != "" {
		return actAs, sourceFlag, nil
	}
	if s.Config.Session.User != "" {
		return s.Config.Session.User, sourceConfig, nil
	}
	name, err := utils.GetUsername()
	if err != nil {
		return "", "", fmt.Errorf("%w: acting user (pass --as <username>)", kerrors.ErrMissingField)
	}
	return name, sourceSystem, nil
}

// actor resolves the acting user against the Users table.
func (s *session) actor(ctx context.Context) (tables.User, error) {
	name, source, err := s.actorName()
	if err != nil {
		return tables.User{}, err
	}
	Logger.Debugf("Acting user %q from %s", name, source)
	user, err := s.Tracker.Login(ctx, name)
	if errors.Is(err, kerrors.ErrUserNotFound) {
		return tables.User{}, fmt.Errorf("%w (acting user taken from %s)", err, source)
	}
	return user, err
}

func driverName(opts store.Options) string {
	if opts.Driver != "" {
		return opts.Driver
	}
	return store.DriverFor(opts.Path)
}

// reportBootstrap tells the user what EnsureStoreReady changed. quiet
// suppresses the message for a freshly created store.
func reportBootstrap(r *bootstrap.Result, location string, quiet bool) {
	switch {
	case r.Regenerated:
		Logger.Warnf("Store %s was regenerated with seed data: %s", location, r.Reason)
		if r.BackupPath != "" {
			Logger.Warnf("Previous contents saved to %s", r.BackupPath)
		}
	case r.Repaired:
		Logger.Warnf("Store %s was repaired: %s", location, r.Reason)
	case r.Created && !quiet:
		fmt.Println(ui.Success.Sprint("✓") + " Created workflow store at " + ui.Path.Sprint(location))
	case r.Created:
		Logger.Infof("Created workflow store at %s", location)
	}
}
