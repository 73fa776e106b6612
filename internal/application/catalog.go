package application

import (
	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

type PageOptions struct {
	PageSize    int
	SearchLimit int
}

// Catalog groups the stores backed by one API client.
type Catalog struct {
	Dishes      *Collection[domain.Dish]
	Ingredients *Collection[domain.Ingredient]
	MealRecords *Collection[domain.MealRecord]
	Categories  *CategoryStore
}

func NewCatalog(requester ports.Requester, notifier ports.Notifier, log logrus.FieldLogger, opts PageOptions) *Catalog {
	return &Catalog{
		Dishes:      NewDishCollection(requester, notifier, log, opts),
		Ingredients: NewIngredientCollection(requester, notifier, log, opts),
		MealRecords: NewMealRecordCollection(requester, notifier, log, opts),
		Categories:  NewCategoryStore(requester, notifier, log),
	}
}

func NewDishCollection(requester ports.Requester, notifier ports.Notifier, log logrus.FieldLogger, opts PageOptions) *Collection[domain.Dish] {
	return NewCollection[domain.Dish](CollectionConfig{
		Path:        "/dishes",
		Entity:      "Dish",
		Plural:      "dishes",
		Searchable:  true,
		PageSize:    opts.PageSize,
		SearchLimit: opts.SearchLimit,
	}, requester, notifier, log)
}

func NewIngredientCollection(requester ports.Requester, notifier ports.Notifier, log logrus.FieldLogger, opts PageOptions) *Collection[domain.Ingredient] {
	return NewCollection[domain.Ingredient](CollectionConfig{
		Path:        "/ingredients",
		Entity:      "Ingredient",
		Plural:      "ingredients",
		Searchable:  true,
		PageSize:    opts.PageSize,
		SearchLimit: opts.SearchLimit,
	}, requester, notifier, log)
}

// Meal records have no search endpoint.
func NewMealRecordCollection(requester ports.Requester, notifier ports.Notifier, log logrus.FieldLogger, opts PageOptions) *Collection[domain.MealRecord] {
	return NewCollection[domain.MealRecord](CollectionConfig{
		Path:     "/meal-records",
		Entity:   "Meal record",
		Plural:   "meal records",
		PageSize: opts.PageSize,
	}, requester, notifier, log)
}
