package domain

import "time"

// MealType represents when during the day a meal was eaten.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Meal represents a logged meal belonging to a user.
type Meal struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Type        MealType   `json:"type" db:"type"`
	ConsumedAt  time.Time  `json:"consumed_at" db:"consumed_at"`
	CreatedBy   string     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Items       []MealItem `json:"items,omitempty" db:"-"`
}

// OwnerID returns the id of the principal that owns the meal.
func (m *Meal) OwnerID() string { return m.CreatedBy }

// MealItem links a food to a meal with the consumed quantity.
type MealItem struct {
	ID       string  `json:"id" db:"id"`
	MealID   string  `json:"meal_id" db:"meal_id"`
	FoodID   string  `json:"food_id" db:"food_id"`
	Quantity float64 `json:"quantity" db:"quantity"`
	Unit     string  `json:"unit" db:"unit"`
}
