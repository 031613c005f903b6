package cli

import (
	"github.com/spf13/cobra"
)

// analyzeCmd runs a single analysis without entering the interactive loop.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Submit a file for integrity analysis and print the report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		textFile, _ := cmd.Flags().GetString("text-file")
		doExport, _ := cmd.Flags().GetBool("export")
		doChat, _ := cmd.Flags().GetBool("chat")

		if err := runAnalyze(rootCtx, a, args[0], textFile); err != nil {
			return err
		}

		if doExport {
			exportCurrent(rootCtx, a)
		}
		if doChat {
			return runInteractive(rootCtx, a)
		}
		return nil
	},
}
