package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove [id...]",
	Short: "Remove entries from the list",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, store, state := bootstrap(".")

		removed := 0
		for _, id := range args {
			if state.Remove(id) {
				removed++
			} else {
				fmt.Printf("%s is not in the list\n", id)
			}
		}
		saveState(store, state)
		fmt.Printf("Removed %d entries.\n", removed)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
