package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

// MealRepository handles meal data access operations.
type MealRepository struct {
	db *sqlx.DB
}

// NewMealRepository creates a new MealRepository.
func NewMealRepository(db *sqlx.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Create inserts a meal and its items atomically and returns the stored
// meal with items attached.
func (r *MealRepository) Create(ctx context.Context, meal domain.Meal) (*domain.Meal, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperrors.Classify(err, "create", "meal")
	}
	defer tx.Rollback()

	var created domain.Meal
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO meals (name, description, type, consumed_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, description, type, consumed_at, created_by, created_at, updated_at`,
		meal.Name, meal.Description, meal.Type, meal.ConsumedAt, meal.CreatedBy,
	).StructScan(&created)
	if err != nil {
		return nil, apperrors.Classify(err, "create", "meal")
	}

	for _, item := range meal.Items {
		var stored domain.MealItem
		err = tx.QueryRowxContext(ctx,
			`INSERT INTO meal_items (meal_id, food_id, quantity, unit)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, meal_id, food_id, quantity, unit`,
			created.ID, item.FoodID, item.Quantity, item.Unit,
		).StructScan(&stored)
		if err != nil {
			return nil, apperrors.Classify(err, "create", "meal item")
		}
		created.Items = append(created.Items, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Classify(err, "create", "meal")
	}
	return &created, nil
}

// FindByID retrieves a meal with its items.
func (r *MealRepository) FindByID(ctx context.Context, id string) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.db.GetContext(ctx, &meal,
		`SELECT id, name, description, type, consumed_at, created_by, created_at, updated_at
		 FROM meals WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.Classify(err, "get", "meal")
	}

	items := []domain.MealItem{}
	err = r.db.SelectContext(ctx, &items,
		`SELECT id, meal_id, food_id, quantity, unit
		 FROM meal_items WHERE meal_id = $1`, id)
	if err != nil {
		return nil, apperrors.Classify(err, "get", "meal items")
	}
	meal.Items = items
	return &meal, nil
}

// List returns one page of the owner's meals without items, newest first.
func (r *MealRepository) List(ctx context.Context, ownerID string, skip, take int) ([]domain.Meal, error) {
	meals := []domain.Meal{}
	err := r.db.SelectContext(ctx, &meals,
		`SELECT id, name, description, type, consumed_at, created_by, created_at, updated_at
		 FROM meals WHERE created_by = $1
		 ORDER BY consumed_at DESC
		 LIMIT $2 OFFSET $3`, ownerID, take, skip)
	if err != nil {
		return nil, apperrors.Classify(err, "list", "meal")
	}
	return meals, nil
}

// Count returns the owner's total meal count.
func (r *MealRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM meals WHERE created_by = $1`, ownerID)
	if err != nil {
		return 0, apperrors.Classify(err, "count", "meal")
	}
	return total, nil
}

// Update rewrites a meal's mutable columns, constrained on the owner id.
func (r *MealRepository) Update(ctx context.Context, meal domain.Meal) (*domain.Meal, error) {
	var updated domain.Meal
	err := r.db.QueryRowxContext(ctx,
		`UPDATE meals
		 SET name = $1, description = $2, type = $3, consumed_at = $4, updated_at = NOW()
		 WHERE id = $5 AND created_by = $6
		 RETURNING id, name, description, type, consumed_at, created_by, created_at, updated_at`,
		meal.Name, meal.Description, meal.Type, meal.ConsumedAt, meal.ID, meal.CreatedBy,
	).StructScan(&updated)
	if err != nil {
		return nil, apperrors.Classify(err, "update", "meal")
	}
	return &updated, nil
}

// Delete removes an owner's meal; items go with it via ON DELETE CASCADE.
func (r *MealRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM meals WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return apperrors.Classify(err, "delete", "meal")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Classify(err, "delete", "meal")
	}
	if affected == 0 {
		return apperrors.NotFound("meal not found")
	}
	return nil
}
