package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/bootstrap"
	"github.com/PolarWolf314/waypoint/internal/configs"
	"github.com/PolarWolf314/waypoint/internal/store"
	"github.com/PolarWolf314/waypoint/internal/ui"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "regenerate the store with seed data even if it is intact (the old file is backed up)")
}

func resetInitState() {
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a waypoint project and its store",
	Long: `Creates .waypoint/config.toml in the current directory (unless already
inside a project) and makes sure the store holds all four tables.

A missing store is created with the default users and the thirteen workflow
steps. A store that cannot be read, or that lacks the Records, Users or
Steps table, is regenerated after its contents are backed up. A store that
only lacks Workflow_Status gets an empty one.

Examples:
  # Start a project using workflow_data.xlsx
  waypoint init

  # Use SQLite instead
  waypoint init --store workflow.db

  # Throw away the current store and start over
  waypoint init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		ctx := context.Background()

		wd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
		}
		settings, err := configs.ResolveSettings(wd)
		if err != nil {
			return err
		}

		root := settings.BaseDir(wd)
		configPath := configs.ProjectConfigPath(root)
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			cfg := configs.Default()
			if storePath != "" {
				cfg.Store.Path = storePath
			}
			if driver != "" {
				cfg.Store.Driver = string(driver)
			}
			if err := configs.SaveFile(configPath, cfg); err != nil {
				return Logger.ErrorfAndReturn("%v", err)
			}
			fmt.Println(ui.Success.Sprint("✓") + " Created " + ui.Path.Sprint(configPath))
		} else if err != nil {
			return Logger.ErrorfAndReturn("failed to check %s: %v", configPath, err)
		} else {
			Logger.Infof("Using existing config %s", configPath)
		}

		_, cfg, base, err := loadConfig()
		if err != nil {
			return err
		}
		opts := cfg.StoreOptions(base)
		s, err := store.Open(opts)
		if err != nil {
			return err
		}
		defer s.Close()

		spinner, cleanup := startSpinner("Checking workflow store...")
		defer cleanup()

		result, err := bootstrap.EnsureStoreReady(ctx, s, bootstrap.Options{Force: initForce})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to prepare the store"
			return err
		}

		switch {
		case result.Created:
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Created workflow store at " + ui.Path.Sprint(s.Location())
		case result.Regenerated:
			msg := ui.Warning.Sprint("⚠") + " Regenerated workflow store at " + ui.Path.Sprint(s.Location()) + " " + ui.Muted.Sprint(result.Reason)
			if result.BackupPath != "" {
				msg += "\n" + ui.Info.Sprint("→") + " Previous contents saved to " + ui.Path.Sprint(result.BackupPath)
			}
			spinner.FinalMSG = msg
		case result.Repaired:
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Repaired workflow store at " + ui.Path.Sprint(s.Location()) + " " + ui.Muted.Sprint(result.Reason)
		default:
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Workflow store at " + ui.Path.Sprint(s.Location()) + " is ready"
		}
		if result.Created || result.Regenerated {
			spinner.FinalMSG += "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("waypoint record create --as admin") + " to add your first record"
		}
		return nil
	},
}
