package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

var (
	createClient   string
	createEntity   string
	createSolution string
	createJSON     bool
)

func init() {
	recordCreateCmd.Flags().StringVar(&createClient, "client", "", "client group (required)")
	recordCreateCmd.Flags().StringVar(&createEntity, "entity", "", "legal entity (required)")
	recordCreateCmd.Flags().StringVar(&createSolution, "solution", "", "solution (required)")
	recordCreateCmd.Flags().BoolVar(&createJSON, "json", false, "output in JSON format")
}

func resetRecordCreateState() {
	createClient = ""
	createEntity = ""
	createSolution = ""
	createJSON = false
}

var recordCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a record and its workflow checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting record create command")
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

		spinner, cleanup := startSpinner("Creating record...")
		defer cleanup()

		result, err := s.Tracker.CreateRecord(ctx, workflows.CreateRecordOptions{
			ClientGroup: createClient,
			LegalEntity: createEntity,
			Solution:    createSolution,
			Actor:       actor,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to create record"
			return err
		}
		Logger.Infof("Created record %d with %d status rows", result.Record.UniqueID, result.StatusRows)

		if createJSON {
			return printJSON(result)
		}
		spinner.FinalMSG = fmt.Sprintf("%s Created record %s for %s / %s / %s with %d steps\n%s Run %s to see its checklist",
			ui.Success.Sprint("✓"),
			ui.Highlight.Sprint(result.Record.UniqueID),
			result.Record.ClientGroup, result.Record.LegalEntity, result.Record.Solution,
			result.StatusRows,
			ui.Info.Sprint("→"),
			ui.Code.Sprintf("waypoint record show %d", result.Record.UniqueID))
		return nil
	},
}
