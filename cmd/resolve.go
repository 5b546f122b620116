package cmd

import (
	"context"
	"fmt"

	"github.com/edward9487/minecraft-mod-converter/list"
	"github.com/edward9487/minecraft-mod-converter/logger"
	"github.com/edward9487/minecraft-mod-converter/resolver"
	"github.com/edward9487/minecraft-mod-converter/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the list against the target game version and loader",
	Long: `Resolves every non-paused entry against the configured target game
version and loader, then completes the list with the required dependencies
the resolved builds declare. Paused and custom entries are skipped.`,
	Run: func(cmd *cobra.Command, _ []string) {
		logger.Log.Info("Running resolve command...")

		plain, _ := cmd.Flags().GetBool("plain")
		target, _ := cmd.Flags().GetString("target")
		loader, _ := cmd.Flags().GetString("loader")

		cfg, store, state := bootstrap(".")
		if target != "" {
			state.TargetVersion = target
		}
		if loader != "" {
			state.Loader = loader
		}
		if state.TargetVersion == "" || state.Loader == "" {
			logger.Log.Fatal("Error: MINECRAFT_VERSION and MINECRAFT_LOADER must be set.")
		}
		if len(state.Entries) == 0 {
			fmt.Println("The list is empty. Add some mods first.")
			return
		}

		r := newResolver(cfg)
		if plain {
			runResolvePlain(r, state)
		} else if !runResolveTUI(r, state) {
			fmt.Println("Resolution aborted; the saved list was not changed.")
			return
		}

		saveState(store, state)
		printResolveSummary(state)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Bool("plain", false, "Print progress lines instead of the interactive view")
	resolveCmd.Flags().String("target", "", "Override the target game version for this pass")
	resolveCmd.Flags().String("loader", "", "Override the target loader for this pass")
}

// runResolvePass is the engine shared by the plain and TUI paths: one
// resolution pass over the active entries followed by one hop of
// dependency expansion, merged into the state. Only the final merged state
// is committed, so an abandoned pass never half-applies.
func runResolvePass(ctx context.Context, r *resolver.Resolver, state *list.State, progress func(list.Entry)) (int, error) {
	resolved, err := r.ResolveAll(ctx, state.Active(), state.TargetVersion, state.Loader, progress)
	if err != nil {
		return 0, err
	}
	state.Merge(resolved)

	exp, err := r.Expand(ctx, resolved, state, progress)
	if err != nil {
		return 0, err
	}
	state.Append(exp.Entries)
	for _, id := range exp.Selected {
		state.SetSelected(id, true)
	}
	return len(exp.Entries), nil
}

func runResolvePlain(r *resolver.Resolver, state *list.State) {
	logger.Log.Infof("Resolving %d entries for Minecraft %s (%s)...",
		len(state.Active()), state.TargetVersion, state.Loader)

	added, err := runResolvePass(context.Background(), r, state, func(e list.Entry) {
		fmt.Printf("  %-32s %s\n", e.Title, ui.RenderStatus(e.Status))
	})
	if err != nil {
		logger.Log.Fatalw("Resolution pass failed", zap.Error(err))
	}
	if added > 0 {
		fmt.Printf("Added %d required dependencies.\n", added)
	}
}

func printResolveSummary(state *list.State) {
	counts := state.CountsByStatus()
	fmt.Printf("Finished. %d resolvable, %d missing, %d paused, %d custom.\n",
		counts[list.StatusResolvable], counts[list.StatusMissing],
		counts[list.StatusPaused], counts[list.StatusCustom])
}
