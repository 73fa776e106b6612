package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bnema/foodcook-cli/internal/adapters/render/catalog"
	"github.com/bnema/foodcook-cli/internal/application"
	"github.com/spf13/cobra"
)

type listFlags struct {
	page     int
	pageSize int
	all      bool
	asJSON   bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Items per page (default from config)")
	cmd.Flags().BoolVar(&f.all, "all", false, "Keep loading pages until every item is fetched")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Render JSON output")
	cmd.MarkFlagsMutuallyExclusive("page", "all")
}

// runList fetches one page of store, optionally loads the rest, and renders
// the cached items.
func runList[T any](
	cmd *cobra.Command,
	store *application.Collection[T],
	flags listFlags,
	filters url.Values,
	label string,
	render func([]T, catalog.ListMeta) (string, error),
) error {
	if flags.pageSize != 0 {
		if err := store.SetPageSize(flags.pageSize); err != nil {
			return err
		}
	}
	if err := store.SetPage(flags.page); err != nil {
		return err
	}

	err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) error {
		if _, err := store.Fetch(ctx, filters); err != nil {
			return err
		}
		// Stop on an empty page too: a server total larger than the rows it
		// returns would otherwise keep HasMore true forever.
		for flags.all {
			page, loaded, err := store.LoadMore(ctx)
			if err != nil {
				return err
			}
			if !loaded || len(page.Data) == 0 {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	state := store.State()
	if flags.asJSON {
		return writeJSON(cmd, state.Items)
	}

	rendered, err := render(state.Items, catalog.ListMeta{
		Total:    state.Total,
		Page:     state.CurrentPage,
		PageSize: state.PageSize,
	})
	if err != nil {
		return fmt.Errorf("render list: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func runSearch[T any](
	cmd *cobra.Command,
	store *application.Collection[T],
	keyword string,
	asJSON bool,
	render func([]T, catalog.ListMeta) (string, error),
) error {
	err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Searching...", func(ctx context.Context) error {
		_, err := store.Search(ctx, keyword)
		return err
	})
	if err != nil {
		return err
	}

	state := store.State()
	if asJSON {
		return writeJSON(cmd, state.Items)
	}

	rendered, err := render(state.Items, catalog.ListMeta{Total: state.Total})
	if err != nil {
		return fmt.Errorf("render search results: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRendered(cmd *cobra.Command, rendered string, err error) error {
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return uint(id), nil
}

// optionalID maps 0 to nil for flags such as --category.
func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
