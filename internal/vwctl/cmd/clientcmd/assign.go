package clientcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newAssignCommand creates a command for moving a client into a group
func newAssignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign ID GROUP",
		Short: "Assign a client to a group",
		Long: `Assign a playback client to a streaming group. A client already in
another group is moved; its screen pin does not carry over.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.AssignClientToGroup(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("error assigning client: %w", err)
			}

			fmt.Printf("Client %s assigned to group %s\n", args[0], args[1])
			return nil
		},
	}
}

// newUnassignCommand creates a command for removing a client from its group
func newUnassignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign ID",
		Short: "Remove a client from its group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.UnassignClientFromGroup(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error unassigning client: %w", err)
			}

			fmt.Printf("Client %s unassigned\n", args[0])
			return nil
		},
	}
}

// newAssignScreenCommand creates a command for pinning a client to a screen
func newAssignScreenCommand() *cobra.Command {
	var screen int

	cmd := &cobra.Command{
		Use:   "assign-screen ID GROUP",
		Short: "Pin a client to a screen in a group",
		Example: `  # Drive the middle screen of a three-screen wall
  vwctl client assign-screen pi-42 lobby --screen=1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.AssignClientToScreen(cmd.Context(), args[0], args[1], screen); err != nil {
				return fmt.Errorf("error assigning screen: %w", err)
			}

			fmt.Printf("Client %s pinned to screen %d of group %s\n", args[0], screen, args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&screen, "screen", 0, "Zero-based screen position")

	return cmd
}

// newUnassignScreenCommand creates a command for unpinning a client's screen
func newUnassignScreenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign-screen ID",
		Short: "Unpin a client from its screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.UnassignClientFromScreen(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error unassigning screen: %w", err)
			}

			fmt.Printf("Client %s unpinned from its screen\n", args[0])
			return nil
		},
	}
}
