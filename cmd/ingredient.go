package cmd

import (
	"fmt"

	"github.com/bnema/foodcook-cli/internal/adapters/render/catalog"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newIngredientCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredient",
		Aliases: []string{"ingredients"},
		Short:   "Browse and manage ingredients",
	}

	cmd.AddCommand(
		newIngredientListCmd(app),
		newIngredientSearchCmd(app),
		newIngredientGetCmd(app),
		newIngredientCreateCmd(app),
		newIngredientUpdateCmd(app),
		newIngredientDeleteCmd(app),
	)

	return cmd
}

func newIngredientListCmd(app *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, app.catalog.Ingredients, flags, nil, "Fetching ingredients...", catalog.Ingredients)
		},
	}

	flags.register(cmd)

	return cmd
}

func newIngredientSearchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search ingredients by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, app.catalog.Ingredients, args[0], asJSON, catalog.Ingredients)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newIngredientGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one ingredient as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ingredient, err := app.catalog.Ingredients.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, ingredient)
		},
	}
}

type ingredientFlags struct {
	name  string
	price float64
	unit  string
}

func (f *ingredientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Ingredient name")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Unit price")
	cmd.Flags().StringVar(&f.unit, "unit", "", "Unit, e.g. g or pcs")
}

func (f *ingredientFlags) apply(cmd *cobra.Command, input *domain.IngredientInput) {
	changed := cmd.Flags().Changed
	if changed("name") {
		input.Name = f.name
	}
	if changed("price") {
		input.Price = f.price
	}
	if changed("unit") {
		input.Unit = f.unit
	}
}

func newIngredientCreateCmd(app *app) *cobra.Command {
	var flags ingredientFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input domain.IngredientInput
			flags.apply(cmd, &input)

			ingredient, err := app.catalog.Ingredients.Create(cmd.Context(), input)
			if ingredient.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ingredient.ID, ingredient.Name)
			}
			return err
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func newIngredientUpdateCmd(app *app) *cobra.Command {
	var flags ingredientFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an ingredient; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := app.catalog.Ingredients.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			input := domain.IngredientInput{Name: current.Name, Price: current.Price, Unit: current.Unit}
			flags.apply(cmd, &input)

			ingredient, err := app.catalog.Ingredients.Update(cmd.Context(), id, input)
			if ingredient.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ingredient.ID, ingredient.Name)
			}
			return err
		},
	}

	flags.register(cmd)

	return cmd
}

func newIngredientDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an ingredient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.catalog.Ingredients.Delete(cmd.Context(), id)
		},
	}
}
