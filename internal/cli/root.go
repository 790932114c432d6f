package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hivemind",
	Short: "Knowledge propagation for autonomous agent pools",
	Long:  "Hivemind diffuses learned experience across a pool of agents, tracks the teaching graph, and scores collective intelligence. Single Go binary.",
}

// configPath is settable on every command via --config.
var configPath string

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "hivemind.yaml", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}
