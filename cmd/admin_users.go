package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/ui"
)

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		users, err := s.Tracker.Users(ctx)
		if err != nil {
			return err
		}
		if adminJSON {
			return printJSON(users)
		}

		fmt.Printf("%-20s  %-10s  %s\n", "USERNAME", "ROLE", "EMAIL")
		for _, u := range users {
			fmt.Printf("%-20s  %-10s  %s\n", u.Username, ui.RoleBadge(u.Role), u.Email)
		}
		return nil
	},
}

var adminUsersExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export users as YAML (to stdout without a file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		users, err := s.Tracker.Users(ctx)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if err := writeDocument(path, usersDocument{Users: users}); err != nil {
			return err
		}
		if path != "" && path != "-" {
			fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d users to ", len(users)) + ui.Path.Sprint(path))
		}
		return nil
	},
}

var adminUsersImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the Users table from a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc usersDocument
		if err := readDocument(args[0], &doc); err != nil {
			return err
		}
		Logger.Debugf("Read %d users from %s", len(doc.Users), args[0])

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

		spinner, cleanup := startSpinner("Replacing users...")
		defer cleanup()

		result, err := s.Tracker.ReplaceUsers(ctx, actor, doc.Users)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Users were not replaced"
			return err
		}
		spinner.FinalMSG = fmt.Sprintf("%s Replaced %d users with %d", ui.Success.Sprint("✓"), result.Previous, result.Count)
		return nil
	},
}
