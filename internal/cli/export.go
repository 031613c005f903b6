package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mdsinan09/hcis-project/internal/export"
)

// exportCmd writes portable artifacts for a persisted report. With no id it
// exports the most recent one.
var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a persisted report as markdown and JSON artifacts.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		records := a.store.List(rootCtx)
		if len(records) == 0 {
			return fmt.Errorf("history is empty; analyze a file first")
		}

		rec := records[0]
		if len(args) == 1 {
			found := false
			for _, r := range records {
				if r.ID == args[0] {
					rec, found = r, true
					break
				}
			}
			if !found {
				return fmt.Errorf("no history entry with id %s", args[0])
			}
		}

		fields := export.FieldsFor(rec.Report)
		mdPath, err := export.WriteMarkdown(a.cfg.ExportDir, fields)
		if err != nil {
			return err
		}
		jsonPath, err := export.WriteJSON(a.cfg.ExportDir, fields)
		if err != nil {
			return err
		}
		a.display.PrintSuccess(fmt.Sprintf("Exported %s and %s", mdPath, jsonPath))
		return nil
	},
}
