// The vwctl command provides a command-line interface for managing
// Vidwall Console groups, clients, and videos.
package main

import "github.com/vidwall/vidwall-console/internal/vwctl/cmd"

func main() {
	cmd.Execute()
}
