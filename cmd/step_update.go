package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

var (
	updateStatus statusValue
	updateAssign string
	updateJSON   bool
)

func init() {
	stepUpdateCmd.Flags().Var(&updateStatus, "status", `new status: "Not Started", "In Progress" or "Completed" (required)`)
	stepUpdateCmd.Flags().StringVar(&updateAssign, "assign", "", `username to assign the step to ("" clears the assignment)`)
	stepUpdateCmd.Flags().BoolVar(&updateJSON, "json", false, "output in JSON format")
	_ = stepUpdateCmd.MarkFlagRequired("status")
}

func resetStepUpdateState() {
	updateStatus = ""
	updateAssign = ""
	updateJSON = false
}

var stepUpdateCmd = &cobra.Command{
	Use:   "update <record-id> <step-id>",
	Short: "Change the status and assignee of a step",
	Long: `Changes the status of a step and, with --assign, who it is assigned to.
Without --assign the current assignee is kept.

Steps requiring Lead can only be updated by Leads. Steps requiring Manager
can be updated by Managers and Leads. Completing a step records who
completed it and when.`,
	Args: cobra.ExactArgs(2),
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

		actor, err := s.actor(ctx)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner(fmt.Sprintf("Updating step %d of record %d...", stepID, recordID))
		defer cleanup()

		result, err := s.Tracker.UpdateStep(ctx, workflows.UpdateStepOptions{
			RecordID:       recordID,
			StepID:         stepID,
			Status:         tables.Status(updateStatus),
			AssignedTo:     updateAssign,
			KeepAssignment: !cmd.Flags().Changed("assign"),
			Actor:          actor,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Step was not updated"
			return err
		}

		if updateJSON {
			return printJSON(result)
		}
		msg := fmt.Sprintf("%s Step %d of record %s: %s → %s",
			ui.Success.Sprint("✓"), stepID, ui.Highlight.Sprint(recordID),
			ui.StatusLabel(result.Previous), ui.StatusLabel(result.Row.Status))
		if result.Row.AssignedTo != "" {
			msg += " " + ui.Muted.Sprint("assigned to "+result.Row.AssignedTo)
		}
		if result.ClearedCompletion {
			msg += "\n" + ui.Info.Sprint("→") + " Completion details were cleared"
		} else if result.Previous == tables.StatusCompleted && result.Row.Status != tables.StatusCompleted {
			msg += "\n" + ui.Info.Sprint("→") + " Previous completion by " + result.Row.CompletedBy + " is kept on the row"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
