package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

var commentText string

func init() {
	stepCommentCmd.Flags().StringVar(&commentText, "text", "", "comment text; replaces the existing comment (empty clears it)")
	_ = stepCommentCmd.MarkFlagRequired("text")
}

func resetStepCommentState() {
	commentText = ""
}

var stepCommentCmd = &cobra.Command{
	Use:   "comment <record-id> <step-id>",
	Short: "Set the comment of a step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, stepID, err := parseStepArgs(args)
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		spinner, cleanup := startSpinner("Saving comment...")
		defer cleanup()

		if _, err := s.Tracker.SetComment(ctx, workflows.SetCommentOptions{
			RecordID: recordID,
			StepID:   stepID,
			Comments: commentText,
		}); err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Comment was not saved"
			return err
		}

		spinner.FinalMSG = fmt.Sprintf("%s Comment saved on step %d of record %s", ui.Success.Sprint("✓"), stepID, ui.Highlight.Sprint(recordID))
		return nil
	},
}
