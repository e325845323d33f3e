package video

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/util"
)

// newUploadCommand creates a command for uploading a video file
func newUploadCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a video to the backend",
		Long: `Upload a local video file to the backend's library. The file is
streamed, not buffered, so large files are fine.`,
		Example: `  # Upload, keeping the local filename
  vwctl video upload ./intro.mp4

  # Upload under a different name
  vwctl video upload ./render-final-v3.mp4 --name=intro.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening file: %w", err)
			}
			defer f.Close()

			if name == "" {
				name = filepath.Base(args[0])
			}

			video, err := client.UploadVideo(cmd.Context(), name, f)
			if err != nil {
				return fmt.Errorf("error uploading video: %w", err)
			}

			fmt.Printf("Uploaded %s (%s)\n", video.Name, util.FormatBytes(video.Size))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to store the video under (default: the local filename)")

	return cmd
}

// newDeleteCommand creates a command for deleting a video
func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a video from the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClient()
			if err != nil {
				return err
			}

			if err := client.DeleteVideo(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error deleting video: %w", err)
			}

			fmt.Printf("Video %s deleted\n", args[0])
			return nil
		},
	}
}
