package domain

import "time"

// FoodCategory groups foods for browsing and reporting.
type FoodCategory string

const (
	FoodCategoryFruit     FoodCategory = "fruit"
	FoodCategoryVegetable FoodCategory = "vegetable"
	FoodCategoryGrain     FoodCategory = "grain"
	FoodCategoryProtein   FoodCategory = "protein"
	FoodCategoryDairy     FoodCategory = "dairy"
	FoodCategoryOther     FoodCategory = "other"
)

// Food represents a food item created by a user.
type Food struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description *string      `json:"description,omitempty" db:"description"`
	Barcode     *string      `json:"barcode,omitempty" db:"barcode"`
	Category    FoodCategory `json:"category" db:"category"`
	CreatedBy   string       `json:"created_by" db:"created_by"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// OwnerID returns the id of the principal that owns the food.
func (f *Food) OwnerID() string { return f.CreatedBy }
