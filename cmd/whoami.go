package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/waypoint/internal/tables"
	"github.com/PolarWolf314/waypoint/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the acting user",
	Long:  `Resolves the acting user (--as, WAYPOINT_USER, session.user, or the system username) against the Users table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		name, source, err := s.actorName()
		if err != nil {
			return err
		}
		user, err := s.actor(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("  %-10s %s\n", "User:", ui.Highlight.Sprint(user.Username))
		fmt.Printf("  %-10s %s\n", "Role:", ui.RoleBadge(user.Role))
		fmt.Printf("  %-10s %s\n", "Email:", user.Email)
		fmt.Printf("  %-10s %s\n", "Source:", ui.Muted.Sprint(string(source)))
		if name != user.Username {
			Logger.Debugf("Resolved %q to %q", name, user.Username)
		}
		if user.Role == tables.RoleLead || user.Role == tables.RoleManager {
			fmt.Println(ui.Info.Sprint("→") + " You may edit users and steps with " + ui.Code.Sprint("waypoint admin"))
		}
		return nil
	},
}
