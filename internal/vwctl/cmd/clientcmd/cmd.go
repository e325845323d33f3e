// Package clientcmd implements the playback client management commands
package clientcmd

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the client management command and its subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage playback clients",
		Long: `The client command provides subcommands for managing playback devices.

This includes listing registered clients, naming them, moving them between
groups, and pinning them to specific screens.`,
	}

	cmd.AddCommand(
		newListCommand(),
		newRegisterCommand(),
		newRemoveCommand(),
		newRenameCommand(),
		newAssignCommand(),
		newUnassignCommand(),
		newAssignScreenCommand(),
		newUnassignScreenCommand(),
	)

	return cmd
}
