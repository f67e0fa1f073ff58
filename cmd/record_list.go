package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/ui"
	"github.com/PolarWolf314/waypoint/internal/utils"
	"github.com/PolarWolf314/waypoint/internal/workflows"
)

var (
	listID       int
	listClient   string
	listEntity   string
	listSolution string
	listJSON     bool
)

func init() {
	recordListCmd.Flags().IntVar(&listID, "id", 0, "only the record with this id")
	recordListCmd.Flags().StringVar(&listClient, "client", "", "only records of this client group")
	recordListCmd.Flags().StringVar(&listEntity, "entity", "", "only records of this legal entity")
	recordListCmd.Flags().StringVar(&listSolution, "solution", "", "only records with this solution")
	recordListCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
}

func resetRecordListState() {
	listID = 0
	listClient = ""
	listEntity = ""
	listSolution = ""
	listJSON = false
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records with their progress",
	Long: `Lists records matching the given filters. Alongside the records it shows
the values available for the next filter, so you can narrow down one level
at a time: client group, then legal entity, then solution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := s.Tracker.BrowseRecords(ctx, workflows.RecordFilter{
			ID:          listID,
			ClientGroup: listClient,
			LegalEntity: listEntity,
			Solution:    listSolution,
		})
		if err != nil {
			return err
		}
		Logger.Debugf("Browse matched %d records", len(result.Records))

		if listJSON {
			return printJSON(result)
		}
		printRecordList(result)
		return nil
	},
}

func printRecordList(result *workflows.BrowseResult) {
	if len(result.Records) == 0 {
		fmt.Println(ui.Warning.Sprint("⚠") + " No records match")
	} else {
		fmt.Printf("%-6s  %-20s  %-20s  %-20s  %-10s  %s\n", "ID", "CLIENT GROUP", "LEGAL ENTITY", "SOLUTION", "CREATED BY", "PROGRESS")
		for _, item := range result.Records {
			r := item.Record
			fmt.Printf("%-6d  %-20s  %-20s  %-20s  %-10s  %s %3.0f%%\n",
				r.UniqueID,
				utils.Truncate(r.ClientGroup, 20),
				utils.Truncate(r.LegalEntity, 20),
				utils.Truncate(r.Solution, 20),
				utils.Truncate(r.CreatedBy, 10),
				ui.ProgressBar(item.Summary.Percent, 10),
				item.Summary.Percent)
		}
	}

	fmt.Println()
	printFacet("Client groups", result.ClientGroups, listClient, "--client")
	printFacet("Legal entities", result.LegalEntities, listEntity, "--entity")
	printFacet("Solutions", result.Solutions, listSolution, "--solution")
}

func printFacet(label string, values []string, selected, flag string) {
	if len(values) == 0 {
		return
	}
	shown := make([]string, len(values))
	for i, v := range values {
		if v == selected {
			shown[i] = ui.Highlight.Sprint(v)
		} else {
			shown[i] = v
		}
	}
	fmt.Printf("%s %s %s\n", ui.Info.Sprint(label+":"), strings.Join(shown, ", "), ui.Muted.Sprint(flag))
}

// formatTime renders a stored timestamp, or "-" when it is unset.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return tables.FormatTime(t)
}
