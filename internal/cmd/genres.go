package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/config"
)

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List catalog genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(config.NewConfig().Catalog.Path)
			if err != nil {
				return err
			}
			for _, g := range cat.Genres() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", g, len(cat.Books(g)))
			}
			return nil
		},
	}
}
