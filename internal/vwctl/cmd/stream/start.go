package stream

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newStartCommand creates a command for starting a group's stream
func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start GROUP",
		Short: "Start a group's stream",
		Long: `Start streaming on a group using its saved video selection. The
group's streaming mode decides whether each screen gets its own video or
one video is split across the wall.

Fails if the selection is incomplete, the group's docker process is not
running, or the group is already streaming.`,
		Args: cobra.ExactArgs(1),
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

			switch group.StreamingMode {
			case v1alpha1.StreamingModeSingleVideoSplit:
				err = engine.Controller.StartSingleVideoSplit(cmd.Context(), groupID)
			default:
				err = engine.Controller.StartMultiVideo(cmd.Context(), groupID)
			}
			if err != nil {
				return fmt.Errorf("error starting stream: %w", err)
			}

			fmt.Printf("Stream started for group %s\n", groupID)
			return nil
		},
	}
}

// newStopCommand creates a command for stopping a group's stream
func newStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop GROUP",
		Short: "Stop a group's stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := util.BuildEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.Controller.Stop(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error stopping stream: %w", err)
			}

			fmt.Printf("Stream stopped for group %s\n", args[0])
			return nil
		},
	}
}
