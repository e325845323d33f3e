package stream

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/console/store"
	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newStatusCommand creates a command for showing streaming status
func newStatusCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status [GROUP]",
		Short: "Show streaming status",
		Long: `Show whether groups are currently streaming. With no argument all
groups are listed; with a group id only that group is queried.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				raw, err := client.GetStreamingStatus(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("error fetching status: %w", err)
				}
				fmt.Printf("%s\t%s\n", args[0], util.FormatBool(store.NormalizeStatus(raw)))
				return nil
			}

			statuses, err := client.GetAllStreamingStatuses(cmd.Context())
			if err != nil {
				return fmt.Errorf("error fetching statuses: %w", err)
			}
			normalized := store.NormalizeStatusMap(statuses)

			if output == "json" {
				return util.PrintJSON(cmd.OutOrStdout(), normalized)
			}

			ids := make([]string, 0, len(normalized))
			for id := range normalized {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			tw := util.NewTabWriter(cmd.OutOrStdout())
			defer tw.Flush()

			fmt.Fprintf(tw, "GROUP\tSTREAMING\n")
			for _, id := range ids {
				fmt.Fprintf(tw, "%s\t%s\n", id, util.FormatBool(normalized[id]))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	return cmd
}
