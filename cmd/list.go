package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/edward9487/minecraft-mod-converter/list"
	"github.com/edward9487/minecraft-mod-converter/ui"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the mod list and its resolution state",
	Run: func(cmd *cobra.Command, _ []string) {
		activeOnly, _ := cmd.Flags().GetBool("active")

		_, _, state := bootstrap(".")

		entries := state.Entries
		if activeOnly {
			entries = state.Active()
		}

		if len(entries) == 0 {
			fmt.Println("The list is empty.")
			return
		}

		fmt.Printf("Target: Minecraft %s (%s)\n\n", state.TargetVersion, state.Loader)
		fmt.Println(renderListHeader())
		for _, e := range entries {
			fmt.Println(renderListRow(e, state.IsSelected(e.ID)))
		}
		fmt.Println()
		fmt.Println(renderCounts(state))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("active", false, "Hide paused entries")
}

func renderListHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	return headerStyle.Render(fmt.Sprintf("  %-36s %-12s %-12s %-12s", "Title", "Current", "Target", "Status"))
}

func renderListRow(e list.Entry, selected bool) string {
	marker := " "
	if selected {
		marker = "✓"
	}

	title := e.Title
	if e.IsDependency {
		title += " †"
	}

	// Pad status before applying color to maintain column alignment
	paddedStatus := fmt.Sprintf("%-12s", e.Status)
	coloredStatus := lipgloss.NewStyle().
		Foreground(ui.ToneColor(e.Status.Tone())).
		Render(paddedStatus)

	row := fmt.Sprintf("%s %-36s %-12s %-12s %s",
		marker,
		truncate(title, 34),
		truncate(e.CurrentVersion, 10),
		truncate(e.TargetVersion, 10),
		coloredStatus,
	)

	if e.Status == list.StatusMissing && e.LastSupportedVersion != "" {
		row += fmt.Sprintf("  (last supported: %s)", e.LastSupportedVersion)
	}
	return row
}

func renderCounts(state *list.State) string {
	counts := state.CountsByStatus()
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	return footerStyle.Render(fmt.Sprintf(
		"%d entries: %d resolvable, %d missing, %d pending, %d paused, %d custom — %d selected",
		len(state.Entries),
		counts[list.StatusResolvable], counts[list.StatusMissing],
		counts[list.StatusPending], counts[list.StatusPaused], counts[list.StatusCustom],
		len(state.Selected),
	))
}

func truncate(s string, maxLen int) string {
	// Slice by runes so multibyte titles are never cut mid-character
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen-3]) + "..."
	}
	return s
}
