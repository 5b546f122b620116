package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edward9487/minecraft-mod-converter/config"
	"github.com/edward9487/minecraft-mod-converter/logger"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete shared lists not saved within the retention window",
	Run: func(cmd *cobra.Command, _ []string) {
		olderThan, _ := cmd.Flags().GetDuration("older-than")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
		}
		codec := newShareCodec(cfg)

		cutoff := time.Now().Add(-olderThan)
		removed, err := codec.PruneOlderThan(context.Background(), cutoff)
		if err != nil {
			logger.Log.Fatalw("Failed to prune shared lists", zap.Error(err))
		}

		fmt.Printf("Pruned %d shared lists last saved before %s.\n",
			removed, cutoff.Format(time.RFC3339))
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().Duration("older-than", 90*24*time.Hour, "Retention window for shared lists")
}
