package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newDeleteCommand creates a command for deleting a group
func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a group",
		Long: `Delete a streaming group. Clients assigned to the group become
unassigned; any stream the group is running is stopped by the backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.DeleteGroup(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error deleting group: %w", err)
			}

			fmt.Printf("Group %s deleted\n", args[0])
			return nil
		},
	}
}
