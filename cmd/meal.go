package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/foodcook-cli/internal/adapters/render/catalog"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errEmptyCart = errors.New("no dishes selected (use --dish)")

func newMealCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meal",
		Aliases: []string{"meals"},
		Short:   "Record and review cooked meals",
	}

	cmd.AddCommand(
		newMealListCmd(app),
		newMealGetCmd(app),
		newMealLogCmd(app),
		newMealUpdateCmd(app),
		newMealDeleteCmd(app),
	)

	return cmd
}

func newMealListCmd(app *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your meal records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			render := func(records []domain.MealRecord, meta catalog.ListMeta) (string, error) {
				return catalog.MealRecords(records, meta, app.now())
			}
			return runList(cmd, app.catalog.MealRecords, flags, nil, "Fetching meal records...", render)
		},
	}

	flags.register(cmd)

	return cmd
}

func newMealGetCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one meal record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			record, err := app.catalog.MealRecords.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, record)
			}

			rendered, err := catalog.MealRecord(record, app.now())
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newMealLogCmd(app *app) *cobra.Command {
	var dishIDs []uint
	var thoughts string
	var imageURL string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Put dishes in a cart and record them as a meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cart, err := buildCart(cmd.Context(), app, dishIDs)
			if err != nil {
				return err
			}

			rendered, err := catalog.Cart(cart)
			if err := writeRendered(cmd, rendered, err); err != nil {
				return err
			}
			if dryRun {
				return nil
			}

			record, err := app.catalog.MealRecords.Create(cmd.Context(), domain.MealRecordInput{
				DishIDs:  cart.DishIDs(),
				Thoughts: thoughts,
				ImageURL: imageURL,
			})
			if record.ID != 0 {
				cart.Clear()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged meal record #%d\n", record.ID)
			}
			return err
		},
	}

	cmd.Flags().UintSliceVar(&dishIDs, "dish", nil, "Dish ID to add (repeatable; duplicates count once)")
	cmd.Flags().StringVar(&thoughts, "thoughts", "", "Notes about the meal")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Photo URL")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the cart without recording it")
	_ = cmd.MarkFlagRequired("dish")

	return cmd
}

// buildCart snapshots every selected dish from the server.
func buildCart(ctx context.Context, app *app, dishIDs []uint) (*domain.Cart, error) {
	cart := domain.NewCart()
	for _, id := range dishIDs {
		if cart.Has(id) {
			continue
		}
		dish, err := app.catalog.Dishes.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		cart.Add(dish)
	}

	if cart.Count() == 0 {
		return nil, errEmptyCart
	}
	return cart, nil
}

func newMealUpdateCmd(app *app) *cobra.Command {
	var update domain.MealRecordUpdate

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the notes or photo of a meal record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			record, err := app.catalog.MealRecords.Update(cmd.Context(), id, update)
			if record.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated meal record #%d\n", record.ID)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&update.Thoughts, "thoughts", "", "Notes about the meal")
	cmd.Flags().StringVar(&update.ImageURL, "image-url", "", "Photo URL")
	cmd.MarkFlagsOneRequired("thoughts", "image-url")

	return cmd
}

func newMealDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meal record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.catalog.MealRecords.Delete(cmd.Context(), id)
		},
	}
}
