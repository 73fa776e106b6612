package domain

import "time"

type MealRecord struct {
	ID         uint             `json:"id"`
	UserID     uint             `json:"user_id"`
	TotalPrice float64          `json:"total_price"`
	Thoughts   string           `json:"thoughts"`
	ImageURL   string           `json:"image_url"`
	CreatedAt  time.Time        `json:"created_at"`
	Dishes     []MealRecordDish `json:"dishes,omitempty"`
}

type MealRecordDish struct {
	ID           uint  `json:"id"`
	MealRecordID uint  `json:"meal_record_id"`
	DishID       uint  `json:"dish_id"`
	Quantity     int   `json:"quantity"`
	Dish         *Dish `json:"dish,omitempty"`
}

type MealRecordInput struct {
	DishIDs  []uint `json:"dish_ids"`
	Thoughts string `json:"thoughts,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type MealRecordUpdate struct {
	Thoughts string `json:"thoughts,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
