package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/utils"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

var showJSON bool

func init() {
	recordShowCmd.Flags().BoolVar(&showJSON, "json", false, "output in JSON format")
}

func resetRecordShowState() {
	showJSON = false
}

var recordShowCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "Show a record's workflow checklist",
	Long: `Shows every workflow step of a record grouped by phase, with its status,
assignee, completion details, comment and attachments.

Steps you cannot update with your role are marked with a lock. Steps that
need an attachment but have none are flagged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, err := parseID("record id", args[0])
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

		board, err := s.Tracker.Board(ctx, recordID, actor)
		if err != nil {
			return err
		}

		if showJSON {
			return printJSON(board)
		}
		printBoard(board, actor)
		return nil
	},
}

func parseID(what, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", what, s)
	}
	return id, nil
}

func printBoard(board *workflows.BoardResult, actor tables.User) {
	r := board.Record
	fmt.Printf("%s %s  %s / %s / %s\n", ui.Info.Sprint("Record"), ui.Highlight.Sprint(r.UniqueID), r.ClientGroup, r.LegalEntity, r.Solution)
	fmt.Printf("%s\n", ui.Muted.Sprintf("created %s by %s", formatTime(r.CreatedDate), r.CreatedBy))
	fmt.Printf("%s %3.0f%% %s\n",
		ui.ProgressBar(board.Summary.Percent, 20),
		board.Summary.Percent,
		ui.Muted.Sprintf("%d of %d required steps completed", board.Summary.RequiredCompleted, board.Summary.Required))

	for _, group := range board.Groups {
		fmt.Println()
		fmt.Println(ui.Header.Sprint(group.Header))
		for _, step := range group.Steps {
			printBoardStep(step)
		}
	}

	fmt.Println()
	fmt.Printf("%s acting as %s (%s)\n", ui.Info.Sprint("→"), ui.Highlight.Sprint(actor.Username), ui.RoleBadge(actor.Role))
}

func printBoardStep(step workflows.BoardStep) {
	t := step.Template
	var markers []string
	if !step.CanUpdate {
		markers = append(markers, ui.Warning.Sprintf("🔒 %s", t.RequiredRole))
	}
	if t.Optional {
		markers = append(markers, ui.Muted.Sprint("optional"))
	}
	if step.AttachmentMissing {
		markers = append(markers, ui.Error.Sprint("attachment required"))
	}

	if step.Row == nil {
		fmt.Printf("  %s %2d  %s %s\n", ui.StatusIcon(""), t.StepID, utils.Truncate(t.StepName, 60), ui.Muted.Sprint("no status row"))
		return
	}
	row := step.Row
	fmt.Printf("  %s %2d  %-60s  %s %s\n", ui.StatusIcon(row.Status), t.StepID, utils.Truncate(t.StepName, 60), ui.StatusLabel(row.Status), strings.Join(markers, " "))

	var details []string
	if row.AssignedTo != "" {
		details = append(details, "assigned to "+ui.Highlight.Sprint(row.AssignedTo))
	}
	if row.CompletedBy != "" {
		details = append(details, fmt.Sprintf("completed by %s on %s", row.CompletedBy, formatTime(row.CompletedDate)))
	}
	if len(details) > 0 {
		fmt.Printf("        %s\n", strings.Join(details, ", "))
	}
	if row.Comments != "" {
		fmt.Printf("        %s %s\n", ui.Muted.Sprint("comment"), row.Comments)
	}
	for _, p := range row.Attachments() {
		fmt.Printf("        %s %s\n", ui.Muted.Sprint("file"), ui.Path.Sprint(p))
	}
}
