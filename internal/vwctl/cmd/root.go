// Package cmd implements the Vidwall Console CLI commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidwall/vidwall-console/internal/vwctl/cmd/clientcmd"
	"github.com/vidwall/vidwall-console/internal/vwctl/cmd/group"
	"github.com/vidwall/vidwall-console/internal/vwctl/cmd/stream"
	"github.com/vidwall/vidwall-console/internal/vwctl/cmd/video"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vwctl",
	Short: "Vidwall Console control tool",
	Long: `vwctl is a command line tool for managing Vidwall video wall groups,
playback clients, and videos. It talks to the same streaming backend the
console daemon does and can start, stop, and inspect group streams.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vwctl/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "streaming backend address")

	cobra.OnInitialize(func() {
		if cfgFile != "" {
			if err := os.Setenv("VWCTL_CONFIG", cfgFile); err != nil {
				fmt.Println("Error setting config path:", err)
				os.Exit(1)
			}
		}
		if server, _ := rootCmd.PersistentFlags().GetString("server"); server != "" {
			if err := os.Setenv("VWALL_API_URL", server); err != nil {
				fmt.Println("Error setting server address:", err)
				os.Exit(1)
			}
		}
	})

	// Add commands
	rootCmd.AddCommand(group.NewCommand())
	rootCmd.AddCommand(clientcmd.NewCommand())
	rootCmd.AddCommand(video.NewCommand())
	rootCmd.AddCommand(stream.NewCommand())
	rootCmd.AddCommand(newVersionCmd())
}
