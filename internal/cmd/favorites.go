package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/entrypoint"
	"github.com/mrlokans/bookhub/internal/view"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		Short:   "Manage the terminal client's favorites",
	}

	cmd.AddCommand(newFavoritesListCmd())
	cmd.AddCommand(newFavoritesRefCmd("toggle", "Add a book to favorites or remove it", controller.ActionToggleFavorite))
	cmd.AddCommand(newFavoritesRefCmd("remove", "Remove a book from favorites", controller.ActionRemoveFavorite))
	cmd.AddCommand(newFavoritesClearCmd())

	return cmd
}

func newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTerminalController(cmd, func(_ context.Context, _ *entrypoint.App, ctrl *controller.Controller) error {
				view.WriteFavorites(cmd.OutOrStdout(), ctrl.Snapshot().Favorites)
				return nil
			})
		},
	}
}

func newFavoritesRefCmd(use, short string, action controller.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <title> <author>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := entities.BookRef{Title: args[0], Author: args[1]}
			return withTerminalController(cmd, func(ctx context.Context, _ *entrypoint.App, ctrl *controller.Controller) error {
				if err := ctrl.Dispatch(ctx, controller.Event{Action: action, Book: ref}); err != nil {
					return err
				}
				view.WriteFavorites(cmd.OutOrStdout(), ctrl.Snapshot().Favorites)
				return nil
			})
		},
	}
}

func newFavoritesClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := func(question string) bool {
				if yes {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
					return true
				}
				return false
			}

			return withTerminalController(cmd, func(ctx context.Context, _ *entrypoint.App, ctrl *controller.Controller) error {
				if err := ctrl.Dispatch(ctx, controller.Event{Action: controller.ActionClearFavorites, Confirm: confirm}); err != nil {
					return err
				}
				view.WriteFavorites(cmd.OutOrStdout(), ctrl.Snapshot().Favorites)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
