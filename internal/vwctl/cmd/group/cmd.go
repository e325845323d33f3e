// Package group implements the group management commands
package group

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the group management command and its subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage streaming groups",
		Long: `The group command provides subcommands for managing video wall groups.

This includes creating groups with a screen layout, deleting them, listing
their state, and distributing the group's clients across its screens.`,
	}

	cmd.AddCommand(
		newListCommand(),
		newCreateCommand(),
		newDeleteCommand(),
		newAssignmentsCommand(),
		newAutoAssignCommand(),
	)

	return cmd
}
