package group

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newListCommand creates a command for listing groups
func newListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long: `List all streaming groups with their layout and runtime state.

The output can be formatted as a table (default) or as JSON for scripting.`,
		Example: `  # List all groups
  vwctl group list

  # As JSON
  vwctl group list -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			groups, err := client.ListGroups(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing groups: %w", err)
			}

			switch output {
			case "json":
				return util.PrintJSON(cmd.OutOrStdout(), groups)
			default:
				tw := util.NewTabWriter(cmd.OutOrStdout())
				defer tw.Flush()

				fmt.Fprintf(tw, "ID\tNAME\tSCREENS\tORIENTATION\tMODE\tDOCKER\tSTATUS\tPORTS\n")
				for _, g := range groups {
					ports := make([]string, len(g.Ports))
					for i, p := range g.Ports {
						ports[i] = fmt.Sprintf("%d", p)
					}

					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
						g.ID,
						g.Name,
						g.ScreenCount,
						g.Orientation,
						g.StreamingMode,
						util.FormatBool(g.DockerRunning),
						g.Status,
						strings.Join(ports, ","))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}
