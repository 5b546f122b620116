package cmd

import (
	"fmt"

	"github.com/edward9487/minecraft-mod-converter/logger"

	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [id...]",
	Short: "Add mods to the list by Modrinth project id or slug",
	Long: `Add one or more mods to the list by their Modrinth project id or
slug. Entries start pending and are resolved on the next 'modlist resolve'.

With --custom a user-authored entry is added instead; custom entries are
never resolved against the registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, store, state := bootstrap(".")

		note, _ := cmd.Flags().GetString("note")
		custom, _ := cmd.Flags().GetBool("custom")

		if custom {
			title, _ := cmd.Flags().GetString("title")
			url, _ := cmd.Flags().GetString("url")
			if title == "" {
				logger.Log.Fatal("Error: --title is required for custom entries.")
			}
			id := state.AddCustom(title, url, note)
			saveState(store, state)
			fmt.Printf("Added custom entry %s (%s)\n", title, id)
			return
		}

		if len(args) == 0 {
			logger.Log.Fatal("Error: at least one project id is required.")
		}

		added := 0
		for _, id := range args {
			if state.Add(id, note) {
				added++
			} else {
				fmt.Printf("%s is already in the list\n", id)
			}
		}
		saveState(store, state)
		fmt.Printf("Added %d entries. Run 'modlist resolve' to resolve them.\n", added)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("note", "", "Free-text annotation for the added entries")
	addCmd.Flags().Bool("custom", false, "Add a user-authored entry instead of a registry mod")
	addCmd.Flags().String("title", "", "Title for a custom entry")
	addCmd.Flags().String("url", "", "Download URL for a custom entry")
}
