package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/utils"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

var attachReplace bool

func init() {
	stepAttachCmd.Flags().BoolVar(&attachReplace, "replace", false, "replace the step's attachments instead of adding to them")
}

func resetStepAttachState() {
	attachReplace = false
}

var stepAttachCmd = &cobra.Command{
	Use:   "attach <record-id> <step-id> <file-or-pattern>...",
	Short: "Attach files to a step",
	Long: `Copies files into the attachments directory and records them on the step.
Patterns support ** (for example "reports/**/*.pdf"); quote them so the
shell does not expand them first.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, stepID, err := parseStepArgs(args[:2])
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		spinner, cleanup := startSpinner("Attaching files...")
		defer cleanup()

		result, err := s.Tracker.AttachFiles(ctx, workflows.AttachFilesOptions{
			RecordID: recordID,
			StepID:   stepID,
			Sources:  args[2:],
			Replace:  attachReplace,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Files were not attached"
			return err
		}
		Logger.Debugf("Stored attachments: %v", result.Stored)

		spinner.FinalMSG = fmt.Sprintf("%s Attached %d file(s) to step %d of record %s:%s",
			ui.Success.Sprint("✓"), len(result.Files), stepID, ui.Highlight.Sprint(recordID),
			utils.FormatPaths(result.Files))
		return nil
	},
}
