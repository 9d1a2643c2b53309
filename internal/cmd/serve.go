package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookhub/internal/config"
	"github.com/mrlokans/bookhub/internal/entrypoint"
)

func newServeCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Long: `Start the HTTP server. Settings come from the environment:

  PORT, HOST, DATABASE_PATH, CATALOG_PATH, SLOT_BACKEND, REVEAL_STEP,
  SECURE_COOKIES, CSRF_SECRET, LOG_LEVEL, LOG_FORMAT, METRICS_ENABLED`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}
}
