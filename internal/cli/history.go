package cli

import (
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage previously analyzed reports.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return historyListCmd.RunE(cmd, nil)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted reports, most recent first.",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		records := a.store.List(rootCtx)
		if len(records) > a.cfg.HistoryLimit {
			records = records[:a.cfg.HistoryLimit]
		}
		a.display.PrintHistoryTable(records)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one persisted report by id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.store.Remove(rootCtx, args[0]); err != nil {
			return err
		}
		a.display.PrintSuccess("Deleted " + args[0])

		// The store is stateless; re-fetch for an up-to-date view.
		a.display.PrintHistoryTable(a.store.List(rootCtx))
		return nil
	},
}
