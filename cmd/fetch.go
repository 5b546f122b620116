package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edward9487/minecraft-mod-converter/logger"
	"github.com/edward9487/minecraft-mod-converter/share"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [code]",
	Short: "Replace the working list with a shared one",
	Long: `Looks up a share code and replaces the local working list with the
snapshot stored under it. Fetched entries come back pending and resolve
against your own target version on the next 'modlist resolve'.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		cfg, store, _ := bootstrap(".")
		codec := newShareCodec(cfg)

		snap, err := codec.Lookup(context.Background(), args[0])
		if err != nil {
			if errors.Is(err, share.ErrNotFound) {
				fmt.Printf("No list found for code %s\n", share.Canonicalize(args[0]))
				return
			}
			logger.Log.Fatalw("Failed to fetch shared list", zap.Error(err))
		}

		state := share.Restore(snap)
		saveState(store, state)

		fmt.Printf("Fetched %d entries (saved for Minecraft %s, %s).\n",
			len(state.Entries), snap.TargetVersion, snap.Loader)
		fmt.Println("Run 'modlist resolve' to resolve them against your target version.")
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
