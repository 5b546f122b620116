package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the modlist CLI.
var rootCmd = &cobra.Command{
	Use:   "modlist",
	Short: "Curate and share Minecraft mod lists",
	Long: `modlist maintains a list of Minecraft mods, resolves compatible
versions for a target game version and loader via Modrinth, completes the
list with required dependencies, and exports or shares the result.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
