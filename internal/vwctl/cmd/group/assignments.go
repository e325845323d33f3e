package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newAssignmentsCommand creates a command for showing a group's screen assignments
func newAssignmentsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "assignments ID",
		Short: "Show which client drives each screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			list, err := client.GetScreenAssignments(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error fetching screen assignments: %w", err)
			}

			switch output {
			case "json":
				return util.PrintJSON(cmd.OutOrStdout(), list)
			default:
				tw := util.NewTabWriter(cmd.OutOrStdout())
				defer tw.Flush()

				fmt.Fprintf(tw, "SCREEN\tCLIENT\tHOSTNAME\tSTATUS\n")
				for _, a := range list.Assignments {
					screen := "-"
					if a.ScreenNumber != nil {
						screen = fmt.Sprintf("%d", *a.ScreenNumber)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						screen,
						a.ClientID,
						a.Hostname,
						a.Status)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}

// newAutoAssignCommand creates a command for distributing clients across screens
func newAutoAssignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-assign ID",
		Short: "Distribute the group's clients across its screens",
		Long: `Ask the backend to assign every unpinned client in the group to a
screen. Clients already pinned to a screen keep their position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.AutoAssignScreens(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error auto-assigning screens: %w", err)
			}

			fmt.Printf("Screens assigned for group %s\n", args[0])
			return nil
		},
	}
}
