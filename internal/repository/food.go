package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

// FoodRepository handles food data access operations.
type FoodRepository struct {
	db *sqlx.DB
}

// NewFoodRepository creates a new FoodRepository.
func NewFoodRepository(db *sqlx.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// Create inserts a food and returns the stored row.
func (r *FoodRepository) Create(ctx context.Context, food domain.Food) (*domain.Food, error) {
	var created domain.Food
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO foods (name, description, barcode, category, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, description, barcode, category, created_by, created_at, updated_at`,
		food.Name, food.Description, food.Barcode, food.Category, food.CreatedBy,
	).StructScan(&created)
	if err != nil {
		return nil, apperrors.Classify(err, "create", "food")
	}
	return &created, nil
}

// FindByID retrieves a food by its id.
func (r *FoodRepository) FindByID(ctx context.Context, id string) (*domain.Food, error) {
	var food domain.Food
	err := r.db.GetContext(ctx, &food,
		`SELECT id, name, description, barcode, category, created_by, created_at, updated_at
		 FROM foods WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.Classify(err, "get", "food")
	}
	return &food, nil
}

// List returns one page of the owner's foods, newest first.
func (r *FoodRepository) List(ctx context.Context, ownerID string, skip, take int) ([]domain.Food, error) {
	foods := []domain.Food{}
	err := r.db.SelectContext(ctx, &foods,
		`SELECT id, name, description, barcode, category, created_by, created_at, updated_at
		 FROM foods WHERE created_by = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, ownerID, take, skip)
	if err != nil {
		return nil, apperrors.Classify(err, "list", "food")
	}
	return foods, nil
}

// Count returns the owner's total food count.
func (r *FoodRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM foods WHERE created_by = $1`, ownerID)
	if err != nil {
		return 0, apperrors.Classify(err, "count", "food")
	}
	return total, nil
}

// Update rewrites a food's mutable columns. The owner id is part of the
// WHERE clause so a concurrent ownership change surfaces as not found.
func (r *FoodRepository) Update(ctx context.Context, food domain.Food) (*domain.Food, error) {
	var updated domain.Food
	err := r.db.QueryRowxContext(ctx,
		`UPDATE foods
		 SET name = $1, description = $2, barcode = $3, category = $4, updated_at = NOW()
		 WHERE id = $5 AND created_by = $6
		 RETURNING id, name, description, barcode, category, created_by, created_at, updated_at`,
		food.Name, food.Description, food.Barcode, food.Category, food.ID, food.CreatedBy,
	).StructScan(&updated)
	if err != nil {
		return nil, apperrors.Classify(err, "update", "food")
	}
	return &updated, nil
}

// Delete removes an owner's food.
func (r *FoodRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM foods WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return apperrors.Classify(err, "delete", "food")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Classify(err, "delete", "food")
	}
	if affected == 0 {
		return apperrors.NotFound("food not found")
	}
	return nil
}
