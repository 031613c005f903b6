// Package cli defines the command-line interface for the HCIS client.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Mdsinan09/hcis-project/internal/backend"
	"github.com/Mdsinan09/hcis-project/internal/config"
	"github.com/Mdsinan09/hcis-project/internal/history"
	"github.com/Mdsinan09/hcis-project/internal/session"
	"github.com/Mdsinan09/hcis-project/internal/ui"
)

// All linker flags are set by release infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// app bundles the wired components each command works with.
type app struct {
	cfg        *config.Config
	display    *ui.Display
	client     *backend.Client
	store      *history.Store
	controller *session.Controller
}

// newApp loads configuration and wires the component graph: backend client
// behind the session controller, history store recording completions, and
// the display layer.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout, cfg.UploadTimeout)
	store := history.NewStore(client)

	return &app{
		cfg:        cfg,
		display:    ui.NewDisplay(cfg.Color, cfg.Verbose),
		client:     client,
		store:      store,
		controller: session.NewController(client, client, store),
	}, nil
}

// rootCmd starts the interactive session when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "hcis",
	Short:         "Analyze media and text for AI-generated content.",
	Long:          `HCIS submits media or text to the Holistic Content Integrity System backend, shows a multi-modal integrity score, and lets you chat with an assistant about the result.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return runInteractive(rootCtx, a)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
