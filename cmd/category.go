package cmd

import (
	"fmt"

	"github.com/bnema/foodcook-cli/internal/adapters/render/catalog"
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Browse and manage dish categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryGetCmd(app),
		newCategoryCreateCmd(app),
		newCategoryUpdateCmd(app),
		newCategoryDeleteCmd(app),
	)

	return cmd
}

func newCategoryListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := app.catalog.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, categories)
			}

			rendered, err := catalog.Categories(categories)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newCategoryGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one category as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			category, err := app.catalog.Categories.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, category)
		},
	}
}

func newCategoryCreateCmd(app *app) *cobra.Command {
	var input domain.CategoryInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, err := app.catalog.Categories.Create(cmd.Context(), input)
			if category.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", category.ID, category.Name)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Category name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoryUpdateCmd(app *app) *cobra.Command {
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := app.catalog.Categories.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			input := domain.CategoryInput{Name: current.Name, Description: current.Description}
			if cmd.Flags().Changed("name") {
				input.Name = name
			}
			if cmd.Flags().Changed("description") {
				input.Description = description
			}

			category, err := app.catalog.Categories.Update(cmd.Context(), id, input)
			if category.ID != 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", category.ID, category.Name)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&description, "description", "", "Description")

	return cmd
}

func newCategoryDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.catalog.Categories.Delete(cmd.Context(), id)
		},
	}
}
