package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edward9487/minecraft-mod-converter/list"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause [id...]",
	Short: "Toggle entries between paused and pending",
	Long: `Toggles the paused flag on entries. Paused entries keep their last
known resolution and are skipped by 'modlist resolve' until unpaused, at
which point they go back to pending.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, store, state := bootstrap(".")

		for _, id := range args {
			e := state.Entry(id)
			if e == nil {
				fmt.Printf("%s is not in the list\n", id)
				continue
			}
			if !state.TogglePaused(id) {
				fmt.Printf("%s is a custom entry and cannot be paused\n", e.Title)
				continue
			}
			if e.Status == list.StatusPaused {
				fmt.Printf("Paused %s\n", e.Title)
			} else {
				fmt.Printf("Unpaused %s; it will resolve on the next pass\n", e.Title)
			}
		}
		saveState(store, state)
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd)
}
