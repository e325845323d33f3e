package group

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newCreateCommand creates a command for creating a new group
func newCreateCommand() *cobra.Command {
	var (
		screens     int
		orientation string
		mode        string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a group",
		Long: `Create a new streaming group with a fixed screen layout.

The streaming mode is set at creation and cannot be changed later; delete
and recreate the group to switch between multi-video and split modes.`,
		Example: `  # A three-screen horizontal wall, one video per screen
  vwctl group create lobby --screens=3

  # A 2x2 grid playing one video split across all screens
  vwctl group create atrium --screens=4 --orientation=grid --mode=single_video_split`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			group, err := client.CreateGroup(cmd.Context(), v1alpha1.CreateGroupRequest{
				Name:          args[0],
				ScreenCount:   screens,
				Orientation:   v1alpha1.Orientation(orientation),
				StreamingMode: v1alpha1.StreamingMode(mode),
			})
			if err != nil {
				return fmt.Errorf("error creating group: %w", err)
			}

			fmt.Printf("Group %q created with id %s\n", group.Name, group.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&screens, "screens", 2, "Number of screens in the wall")
	cmd.Flags().StringVar(&orientation, "orientation", string(v1alpha1.OrientationHorizontal), "Wall layout (horizontal, vertical, grid)")
	cmd.Flags().StringVar(&mode, "mode", string(v1alpha1.StreamingModeMultiVideo), "Streaming mode (multi_video, single_video_split)")

	return cmd
}
