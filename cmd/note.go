package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// noteCmd represents the note command
var noteCmd = &cobra.Command{
	Use:   "note [id] [text...]",
	Short: "Set or clear the annotation on an entry",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, store, state := bootstrap(".")

		e := state.Entry(args[0])
		if e == nil {
			fmt.Printf("%s is not in the list\n", args[0])
			return
		}

		e.Note = strings.Join(args[1:], " ")
		saveState(store, state)

		if e.Note == "" {
			fmt.Printf("Cleared note on %s\n", e.Title)
		} else {
			fmt.Printf("Noted %s: %s\n", e.Title, e.Note)
		}
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
