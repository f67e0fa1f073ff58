package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/utils"
)

var adminStepsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflow steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		steps, err := s.Tracker.Steps(ctx)
		if err != nil {
			return err
		}
		if adminJSON {
			return printJSON(steps)
		}

		fmt.Printf("%-3s  %-14s  %-50s  %-8s  %s\n", "ID", "HEADER", "STEP", "ROLE", "FLAGS")
		for _, st := range steps {
			var flags string
			if st.AttachmentRequired {
				flags += "attachment "
			}
			if st.Optional {
				flags += "optional"
			}
			fmt.Printf("%-3d  %-14s  %-50s  %-8s  %s\n", st.StepID, utils.Truncate(st.Header, 14), utils.Truncate(st.StepName, 50), st.RequiredRole, ui.Muted.Sprint(flags))
		}
		return nil
	},
}

var adminStepsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export workflow steps as YAML (to stdout without a file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		steps, err := s.Tracker.Steps(ctx)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if err := writeDocument(path, stepsDocument{Steps: steps}); err != nil {
			return err
		}
		if path != "" && path != "-" {
			fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d steps to ", len(steps)) + ui.Path.Sprint(path))
		}
		return nil
	},
}

var adminStepsImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the Steps table from a YAML document",
	Long: `Replaces the Steps table. Existing records keep their status rows; records
created afterwards get one row per imported step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc stepsDocument
		if err := readDocument(args[0], &doc); err != nil {
			return err
		}
		Logger.Debugf("Read %d steps from %s", len(doc.Steps), args[0])

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		actor, err := s.actor(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Replacing steps...")
		defer cleanup()

		result, err := s.Tracker.ReplaceSteps(ctx, actor, doc.Steps)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Steps were not replaced"
			return err
		}
		spinner.FinalMSG = fmt.Sprintf("%s Replaced %d steps with %d", ui.Success.Sprint("✓"), result.Previous, result.Count)
		return nil
	},
}
