package domain

import "time"

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Ingredient struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

type Dish struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Price       float64          `json:"price"`
	CookingLink string           `json:"cooking_link"`
	CategoryID  *uint            `json:"category_id"`
	Category    *Category        `json:"category,omitempty"`
	Ingredients []DishIngredient `json:"ingredients,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type DishIngredient struct {
	ID           uint        `json:"id"`
	DishID       uint        `json:"dish_id"`
	IngredientID uint        `json:"ingredient_id"`
	Quantity     float64     `json:"quantity"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
}

type DishInput struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	ImageURL    string                `json:"image_url,omitempty"`
	Price       float64               `json:"price"`
	CookingLink string                `json:"cooking_link,omitempty"`
	CategoryID  *uint                 `json:"category_id,omitempty"`
	Ingredients []DishIngredientInput `json:"ingredients,omitempty"`
}

type DishIngredientInput struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type IngredientInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
