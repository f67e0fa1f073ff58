package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/PolarWolf314/waypoint/internal/logging"
	"github.com/PolarWolf314/waypoint/internal/ui"
)

var (
	verbose   bool
	debug     bool
	actAs     string
	storePath string
	driver    driverValue
	Logger    logger.Logger

	// RootCmd is the waypoint command.
	RootCmd = &cobra.Command{
		Use:   "waypoint",
		Short: "Waypoint - track client engagements through a fixed workflow checklist.",
		Long: `Waypoint tracks client engagements ("records") through a checklist of
workflow steps. Every record gets one status row per step, and steps may
require a Lead or Manager to complete them.

All data lives in one store file (an xlsx workbook by default, or SQLite).

Usage:
  waypoint <command> [flags]

Run 'waypoint help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			figure.NewColorFigure("waypoint", "small", "cyan", true).Print()
			fmt.Println()
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("waypoint --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&actAs, "as", "", "username to act as (defaults to WAYPOINT_USER or session.user)")
	RootCmd.PersistentFlags().StringVar(&storePath, "store", "", "path to the store file (overrides WAYPOINT_STORE)")
	RootCmd.PersistentFlags().Var(&driver, "driver", "store driver: xlsx or sqlite (default: inferred from the file name)")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(recordCmd)
	RootCmd.AddCommand(stepCmd)
	RootCmd.AddCommand(adminCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(whoamiCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	actAs = ""
	storePath = ""
	driver = ""
	resetInitState()
	resetRecordState()
	resetStepState()
	resetAdminState()
	resetConfigState()
	resetFlagState(RootCmd)
}
