package stream

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newSelectCommand creates a command for choosing a group's videos
func newSelectCommand() *cobra.Command {
	var splitFile string

	cmd := &cobra.Command{
		Use:   "select GROUP [FILE...]",
		Short: "Choose which videos a group plays",
		Long: `Choose the videos a group will play when its stream starts. The
choice is stored locally and reused until changed.

For a multi-video group, pass one file per screen in screen order. For a
split group, pass --split with the single file to spread across screens.`,
		Example: `  # Three screens, three files
  vwctl stream select lobby left.mp4 middle.mp4 right.mp4

  # One video split across the wall
  vwctl stream select atrium --split panorama.mp4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := util.BuildEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer engine.Close()

			groupID := args[0]
			group, ok := engine.Store.GroupByID(groupID)
			if !ok {
				return fmt.Errorf("unknown group %q", groupID)
			}

			files := args[1:]
			if len(files) == 0 && splitFile == "" {
				return fmt.Errorf("pass one file per screen, or --split with a single file")
			}

			assignments, prevSplit, err := engine.Cache.Load(cmd.Context(), groupID, group.ScreenCount)
			if err != nil {
				return err
			}
			if splitFile == "" {
				splitFile = prevSplit
			}

			if len(files) > 0 {
				if len(files) != group.ScreenCount {
					return fmt.Errorf("group %q has %d screens, got %d files", group.Name, group.ScreenCount, len(files))
				}
				assignments = make([]v1alpha1.VideoAssignment, len(files))
				for i, f := range files {
					assignments[i] = v1alpha1.VideoAssignment{Screen: i, File: f}
				}
			}

			if err := engine.Cache.Save(cmd.Context(), groupID, assignments, splitFile); err != nil {
				return fmt.Errorf("error saving selection: %w", err)
			}

			fmt.Printf("Selection saved for group %s\n", groupID)
			return nil
		},
	}

	cmd.Flags().StringVar(&splitFile, "split", "", "Single file to split across all screens")

	return cmd
}
