package clientcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newListCommand creates a command for listing playback clients
func newListCommand() *cobra.Command {
	var (
		output     string
		groupID    string
		unassigned bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List playback clients",
		Long: `List registered playback clients, optionally filtered to one group
or to clients not assigned to any group.`,
		Example: `  # List every client
  vwctl client list

  # Clients in a group
  vwctl client list --group=g1

  # Clients awaiting assignment
  vwctl client list --unassigned`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			clients, err := client.ListClients(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing clients: %w", err)
			}

			filtered := clients[:0]
			for _, c := range clients {
				if unassigned && c.GroupID != "" {
					continue
				}
				if groupID != "" && c.GroupID != groupID {
					continue
				}
				filtered = append(filtered, c)
			}

			switch output {
			case "json":
				return util.PrintJSON(cmd.OutOrStdout(), filtered)
			default:
				tw := util.NewTabWriter(cmd.OutOrStdout())
				defer tw.Flush()

				fmt.Fprintf(tw, "ID\tNAME\tHOSTNAME\tADDRESS\tGROUP\tSCREEN\tSTATUS\tLAST SEEN\n")
				for _, c := range filtered {
					screen := "-"
					if c.ScreenNumber != nil {
						screen = fmt.Sprintf("%d", *c.ScreenNumber)
					}
					group := c.GroupID
					if group == "" {
						group = "-"
					}

					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						c.ClientID,
						c.DisplayName,
						c.Hostname,
						c.IPAddress,
						group,
						screen,
						c.Status,
						util.FormatDuration(time.Since(c.LastSeen)))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	cmd.Flags().StringVar(&groupID, "group", "", "Filter by group id")
	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "Show only clients without a group")

	return cmd
}
