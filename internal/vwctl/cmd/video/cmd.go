// Package video implements the video library commands
package video

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the video management command and its subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Manage the video library",
		Long: `The video command provides subcommands for managing source videos
on the streaming backend: listing the library, uploading new files, and
deleting ones no longer needed.`,
	}

	cmd.AddCommand(
		newListCommand(),
		newUploadCommand(),
		newDeleteCommand(),
	)

	return cmd
}
