package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entrypoint"
	"github.com/mrlokans/bookhub/internal/query"
	"github.com/mrlokans/bookhub/internal/view"
)

type searchResult struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Cover    string `json:"cover"`
	Favorite bool   `json:"favorite"`
}

func newSearchCmd() *cobra.Command {
	var genre, global string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search the catalog",
		Long: `Search titles and authors, optionally within one genre.

Examples:
  bookhub search dune                  # Local search across all genres
  bookhub search --genre mystery       # One genre
  bookhub search --global the martian  # Global and local queries intersect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTerminalController(cmd, func(ctx context.Context, app *entrypoint.App, ctrl *controller.Controller) error {
				if genre != query.AllGenres && !app.Catalog.HasGenre(genre) {
					return fmt.Errorf("unknown genre %q, choose one of: %s", genre, strings.Join(app.Catalog.Genres(), ", "))
				}

				ev := controller.Event{
					Action: controller.ActionSearch,
					Query:  query.Query{Genre: genre, Global: global, Local: strings.Join(args, " ")},
				}
				if err := ctrl.Dispatch(ctx, ev); err != nil {
					return err
				}

				grid := ctrl.Snapshot().Grid
				out := cmd.OutOrStdout()

				if asJSON {
					results := make([]searchResult, len(grid.Cards))
					for i, card := range grid.Cards {
						results[i] = searchResult{
							Title:    card.Book.Title,
							Author:   card.Book.Author,
							Cover:    card.Book.Cover,
							Favorite: card.Favorite,
						}
					}
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(results)
				}

				view.WriteGridHeader(out, grid)
				for _, card := range grid.Cards {
					view.WriteCard(out, card)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "Only search this genre")
	cmd.Flags().StringVar(&global, "global", "", "Global query applied before the local one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}
