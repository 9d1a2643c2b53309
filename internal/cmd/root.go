// Package cmd holds the bookhub command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookhub/internal/config"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entrypoint"
)

// NewRootCmd creates the root command. Without a subcommand it serves the
// web front end.
func NewRootCmd(version, commit string) *cobra.Command {
	serve := newServeCmd(version)

	root := &cobra.Command{
		Use:   "bookhub",
		Short: "Browse a book catalog and keep favorites",
		Long: `BookHub is a small book catalog with genre filters, search and favorites.

bookhub provides:
- a web front end (serve, the default)
- an interactive terminal (shell)
- one-shot commands for searching and managing favorites`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve)
	root.AddCommand(newShellCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newGenresCmd())
	root.AddCommand(newFavoritesCmd())

	return root
}

// Execute runs the root command.
func Execute(version, commit string) error {
	return NewRootCmd(version, commit).Execute()
}

// withTerminalController builds the app without sessions and runs fn with
// the controller of the configured terminal client.
func withTerminalController(cmd *cobra.Command, fn func(ctx context.Context, app *entrypoint.App, ctrl *controller.Controller) error) error {
	cfg := config.NewConfig()
	app, err := entrypoint.Build(cfg, false)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctrl, err := app.NewController(ctx, cfg.Clients.ClientID)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	return fn(ctx, app, ctrl)
}
