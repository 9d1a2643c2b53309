package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entrypoint"
	"github.com/mrlokans/bookhub/internal/shell"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse the catalog interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTerminalController(cmd, func(ctx context.Context, _ *entrypoint.App, ctrl *controller.Controller) error {
				line := shell.NewLiner()
				defer line.Close()

				return shell.New(ctrl, line, cmd.OutOrStdout()).Run(ctx)
			})
		},
	}
}
