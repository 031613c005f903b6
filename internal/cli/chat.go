package cli

import (
	"github.com/spf13/cobra"
)

// chatCmd jumps straight into the interactive loop. Without a prior analysis
// the assistant answers against the most recent history entry.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant about your analyses.",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return runInteractive(rootCtx, a)
	},
}
