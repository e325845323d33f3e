package video

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newListCommand creates a command for listing videos
func newListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			videos, err := client.ListVideos(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing videos: %w", err)
			}

			switch output {
			case "json":
				return util.PrintJSON(cmd.OutOrStdout(), videos)
			default:
				tw := util.NewTabWriter(cmd.OutOrStdout())
				defer tw.Flush()

				fmt.Fprintf(tw, "NAME\tSIZE\tPATH\n")
				for _, v := range videos {
					fmt.Fprintf(tw, "%s\t%s\t%s\n",
						v.Name,
						util.FormatBytes(v.Size),
						v.Path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}
