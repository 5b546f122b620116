package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edward9487/minecraft-mod-converter/logger"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the selected entries as a download manifest",
	Long: `Writes one line per selected entry: the resolved jar filename where
one is known, otherwise the title marked as version missing. Use 'modlist
select' to choose which entries are exported.`,
	Run: func(cmd *cobra.Command, _ []string) {
		output, _ := cmd.Flags().GetString("output")

		_, _, state := bootstrap(".")

		lines := state.Export()
		if len(lines) == 0 {
			fmt.Println("Nothing selected. Use 'modlist select' first.")
			return
		}

		if output == "" {
			for _, line := range lines {
				fmt.Println(line)
			}
			return
		}

		content := strings.Join(lines, "\n") + "\n"
		if err := afero.WriteFile(afero.NewOsFs(), output, []byte(content), 0o644); err != nil {
			logger.Log.Fatalw("Failed to write export file", zap.Error(err))
		}
		fmt.Printf("Wrote %d lines to %s\n", len(lines), output)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write the manifest to a file instead of stdout")
}
