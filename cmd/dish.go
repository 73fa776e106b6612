package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/foodcook-cli/internal/adapters/render/browse"
	"github.com/bnema/foodcook-cli/internal/adapters/render/catalog"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newDishCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dish",
		Aliases: []string{"dishes"},
		Short:   "Browse and manage dishes",
	}

	cmd.AddCommand(
		newDishListCmd(app),
		newDishSearchCmd(app),
		newDishGetCmd(app),
		newDishCreateCmd(app),
		newDishUpdateCmd(app),
		newDishDeleteCmd(app),
		newDishBrowseCmd(app),
	)

	return cmd
}

func newDishListCmd(app *app) *cobra.Command {
	var flags listFlags
	var categoryID uint

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filters url.Values
			if categoryID != 0 {
				filters = url.Values{"category_id": {strconv.FormatUint(uint64(categoryID), 10)}}
			}
			return runList(cmd, app.catalog.Dishes, flags, filters, "Fetching dishes...", catalog.Dishes)
		},
	}

	flags.register(cmd)
	cmd.Flags().UintVar(&categoryID, "category", 0, "Only dishes in this category ID")

	return cmd
}

func newDishSearchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search dishes by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, app.catalog.Dishes, args[0], asJSON, catalog.Dishes)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newDishGetCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one dish with its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			dish, err := app.catalog.Dishes.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, dish)
			}

			rendered, err := catalog.Dish(dish)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type dishFlags struct {
	name        string
	description string
	imageURL    string
	price       float64
	cookingLink string
	categoryID  uint
	ingredients []string
}

func (f *dishFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Dish name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "Image URL")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Price")
	cmd.Flags().StringVar(&f.cookingLink, "cooking-link", "", "Recipe link")
	cmd.Flags().UintVar(&f.categoryID, "category", 0, "Category ID")
	cmd.Flags().StringSliceVar(&f.ingredients, "ingredient", nil, "Ingredient as <id>:<quantity> (repeatable)")
}

// apply overlays the flags the user actually set onto input.
func (f *dishFlags) apply(cmd *cobra.Command, input *domain.DishInput) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		input.Name = f.name
	}
	if changed("description") {
		input.Description = f.description
	}
	if changed("image-url") {
		input.ImageURL = f.imageURL
	}
	if changed("price") {
		input.Price = f.price
	}
	if changed("cooking-link") {
		input.CookingLink = f.cookingLink
	}
	if changed("category") {
		input.CategoryID = optionalID(f.categoryID)
	}
	if changed("ingredient") {
		ingredients, err := parseDishIngredients(f.ingredients)
		if err != nil {
			return err
		}
		input.Ingredients = ingredients
	}
	return nil
}

func newDishCreateCmd(app *app) *cobra.Command {
	var flags dishFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input domain.DishInput
			if err := flags.apply(cmd, &input); err != nil {
				return err
			}

			dish, err := app.catalog.Dishes.Create(cmd.Context(), input)
			if dish.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", dish.ID, dish.Name)
			}
			return err
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newDishUpdateCmd(app *app) *cobra.Command {
	var flags dishFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a dish; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := app.catalog.Dishes.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			input := dishInputFrom(current)
			if err := flags.apply(cmd, &input); err != nil {
				return err
			}

			dish, err := app.catalog.Dishes.Update(cmd.Context(), id, input)
			if dish.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", dish.ID, dish.Name)
			}
			return err
		},
	}

	flags.register(cmd)

	return cmd
}

func newDishDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a dish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.catalog.Dishes.Delete(cmd.Context(), id)
		},
	}
}

func newDishBrowseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through dishes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.notifier.SetQuiet(true)
			return browse.Run(cmd.Context(), "Dishes", app.catalog.Dishes, dishRow)
		},
	}
}

func dishRow(dish domain.Dish) string {
	row := fmt.Sprintf("#%d %s  %.2f", dish.ID, dish.Name, dish.Price)
	if dish.Category != nil && dish.Category.Name != "" {
		row += "  [" + dish.Category.Name + "]"
	}
	return row
}

func dishInputFrom(dish domain.Dish) domain.DishInput {
	input := domain.DishInput{
		Name:        dish.Name,
		Description: dish.Description,
		ImageURL:    dish.ImageURL,
		Price:       dish.Price,
		CookingLink: dish.CookingLink,
		CategoryID:  dish.CategoryID,
	}
	for _, item := range dish.Ingredients {
		input.Ingredients = append(input.Ingredients, domain.DishIngredientInput{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		})
	}
	return input
}

func parseDishIngredients(raw []string) ([]domain.DishIngredientInput, error) {
	out := make([]domain.DishIngredientInput, 0, len(raw))
	for _, entry := range raw {
		idText, qtyText, ok := strings.Cut(entry, ":")
		if !ok {
			qtyText = "1"
		}

		id, err := parseID(strings.TrimSpace(idText))
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", entry, err)
		}
		quantity, err := strconv.ParseFloat(strings.TrimSpace(qtyText), 64)
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("ingredient %q: quantity must be a positive number", entry)
		}

		out = append(out, domain.DishIngredientInput{IngredientID: id, Quantity: quantity})
	}
	return out, nil
}
