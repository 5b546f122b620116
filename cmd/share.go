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

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Publish the list and print its share code",
	Long: `Snapshots the current list into the share store and prints the code
other people can fetch it with. Saving the same content twice reuses the
existing code; pass --code to update a previously issued one in place.`,
	Run: func(cmd *cobra.Command, _ []string) {
		existing, _ := cmd.Flags().GetString("code")

		cfg, _, state := bootstrap(".")
		codec := newShareCodec(cfg)

		code, updated, err := codec.Issue(context.Background(), existing, state)
		if err != nil {
			if errors.Is(err, share.ErrEmptyList) {
				fmt.Println("The list is empty; nothing to share.")
				return
			}
			logger.Log.Fatalw("Failed to publish list", zap.Error(err))
		}

		if updated {
			fmt.Printf("Updated %s\n", code)
		} else {
			fmt.Printf("Shared as %s\n", code)
		}
		fmt.Println(shareURL(cfg, code))
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)

	shareCmd.Flags().String("code", "", "Update this previously issued code instead of minting a new one")
}
