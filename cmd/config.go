package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/configs"
	"github.com/PolarWolf314/waypoint/internal/ui"
)

var (
	configShowJSON bool
	configSetUser  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change waypoint configuration",
	Long: `Shows the effective configuration and edits the config files.

Settings are layered: defaults, the user config file, the project's
.waypoint/config.toml, the environment (WAYPOINT_STORE, WAYPOINT_USER) and
finally command-line flags.

Examples:
  waypoint config show
  waypoint config set session.user jane.smith --user
  waypoint config set workflow.clear_completion_on_regression true`,
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configSetCmd.Flags().BoolVar(&configSetUser, "user", false, "write to the user config file instead of the project's")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func resetConfigState() {
	configShowJSON = false
	configSetUser = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, cfg, base, err := loadConfig()
		if err != nil {
			return err
		}

		if configShowJSON {
			return printJSON(cfg)
		}

		opts := cfg.StoreOptions(base)
		fmt.Println(ui.Info.Sprint("Configuration"))
		fmt.Println()
		fmt.Printf("  %-34s %s\n", "Project config:", pathOrNone(settings.ProjectConfigPath))
		fmt.Printf("  %-34s %s\n", "User config:", pathOrNone(settings.UserConfigPath))
		fmt.Println()
		fmt.Printf("  %-34s %s\n", "store.path:", ui.Path.Sprint(opts.Path))
		fmt.Printf("  %-34s %s\n", "store.driver:", driverName(opts))
		fmt.Printf("  %-34s %t\n", "store.last_writer_wins:", cfg.Store.LastWriterWins)
		fmt.Printf("  %-34s %s\n", "attachments.dir:", ui.Path.Sprint(cfg.AttachmentsDir(base)))
		fmt.Printf("  %-34s %t\n", "workflow.clear_completion_on_regression:", cfg.Workflow.ClearCompletionOnRegression)
		user := cfg.Session.User
		if user == "" {
			user = ui.Muted.Sprint("unset")
		}
		fmt.Printf("  %-34s %s\n", "session.user:", user)
		return nil
	},
}

func pathOrNone(p string) string {
	if p == "" {
		return ui.Muted.Sprint("none")
	}
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return ui.Path.Sprint(p) + " " + ui.Muted.Sprint("not created")
	}
	return ui.Path.Sprint(p)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Sets one key in the project config file (or the user config file with --user).\n\nKeys:\n  " + joinKeys(),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
		}
		settings, err := configs.ResolveSettings(wd)
		if err != nil {
			return err
		}

		path := settings.ProjectConfigPath
		if configSetUser {
			path = settings.UserConfigPath
		}
		if path == "" {
			fmt.Println(ui.Error.Sprint("✗") + " Not in a waypoint project")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("waypoint init") + " first, or pass " + ui.Flag.Sprint("--user"))
			return nil
		}

		cfg, err := configs.LoadFile(path)
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := configs.SaveFile(path, cfg); err != nil {
			return err
		}
		fmt.Println(ui.Success.Sprint("✓") + " Set " + ui.Highlight.Sprint(args[0]) + " in " + ui.Path.Sprint(path))
		return nil
	},
}

func joinKeys() string {
	return strings.Join(configs.Keys, "\n  ")
}
