package clientcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newRegisterCommand creates a command for registering a playback client
func newRegisterCommand() *cobra.Command {
	var (
		hostname  string
		ipAddress string
	)

	cmd := &cobra.Command{
		Use:   "register ID",
		Short: "Register a playback client",
		Long: `Register a playback device with the backend. Normally clients
register themselves on boot; this exists for pre-provisioning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			err = client.RegisterClient(cmd.Context(), v1alpha1.RegisterClientRequest{
				ClientID:  args[0],
				Hostname:  hostname,
				IPAddress: ipAddress,
			})
			if err != nil {
				return fmt.Errorf("error registering client: %w", err)
			}

			fmt.Printf("Client %s registered\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&hostname, "hostname", "", "Device hostname")
	cmd.Flags().StringVar(&ipAddress, "ip", "", "Device IP address")

	return cmd
}

// newRemoveCommand creates a command for removing a playback client
func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a playback client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.RemoveClient(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error removing client: %w", err)
			}

			fmt.Printf("Client %s removed\n", args[0])
			return nil
		},
	}
}

// newRenameCommand creates a command for setting a client's display name
func newRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Set a client's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.RenameClient(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("error renaming client: %w", err)
			}

			fmt.Printf("Client %s renamed to %q\n", args[0], args[1])
			return nil
		},
	}
}
