package cmd

import (
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Create, list and inspect records",
	Long: `A record is one client engagement (client group, legal entity and
solution). Creating a record gives it one "Not Started" row for every
workflow step.

Examples:
  waypoint record create --client Acme --entity "Acme US" --solution Analytics
  waypoint record list --client Acme
  waypoint record show 1000`,
}

func init() {
	recordCmd.AddCommand(recordCreateCmd)
	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordShowCmd)
}

func resetRecordState() {
	resetRecordCreateState()
	resetRecordListState()
	resetRecordShowState()
}
