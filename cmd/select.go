package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select [id...]",
	Short: "Mark entries as selected for export",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		setSelection(args, true)
	},
}

// deselectCmd represents the deselect command
var deselectCmd = &cobra.Command{
	Use:   "deselect [id...]",
	Short: "Clear the selection mark on entries",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		setSelection(args, false)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(deselectCmd)
}

func setSelection(ids []string, selected bool) {
	_, store, state := bootstrap(".")

	changed := 0
	for _, id := range ids {
		if !state.Has(id) {
			fmt.Printf("%s is not in the list\n", id)
			continue
		}
		state.SetSelected(id, selected)
		changed++
	}
	saveState(store, state)

	verb := "Selected"
	if !selected {
		verb = "Deselected"
	}
	fmt.Printf("%s %d entries.\n", verb, changed)
}
