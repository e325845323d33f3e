// Package stream implements the streaming control commands
package stream

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the streaming command and its subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Control group streams",
		Long: `The stream command starts and stops group streams and inspects
streaming status.

Video choices are made with 'stream select' and remembered per group, so a
wall can be restarted later without re-picking files.`,
	}

	cmd.AddCommand(
		newSelectCommand(),
		newStartCommand(),
		newStopCommand(),
		newStatusCommand(),
	)

	return cmd
}
