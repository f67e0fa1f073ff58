package cmd

import (
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Update the workflow steps of a record",
	Long: `Changes the status, assignee, comment and attachments of one step of a
record. Status changes are subject to the step's required role; comments
and attachments are open to every user.

Examples:
  waypoint step update 1000 6 --status completed --as admin
  waypoint step comment 1000 6 --text "walkthrough booked for Friday"
  waypoint step attach 1000 5 ./confirmation.pdf`,
}

func init() {
	stepCmd.AddCommand(stepUpdateCmd)
	stepCmd.AddCommand(stepCommentCmd)
	stepCmd.AddCommand(stepAttachCmd)
}

func resetStepState() {
	resetStepUpdateState()
	resetStepCommentState()
	resetStepAttachState()
}

// parseStepArgs reads the <record-id> <step-id> positional arguments.
func parseStepArgs(args []string) (int, int, error) {
	recordID, err := parseID("record id", args[0])
	if err != nil {
		return 0, 0, err
	}
	stepID, err := parseID("step id", args[1])
	if err != nil {
		return 0, 0, err
	}
	return recordID, stepID, nil
}
