package service

import (
	"context"
	"time"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/pagination"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/repository"
)

// MealStore defines the meal data access interface consumed by MealService.
type MealStore interface {
	Create(ctx context.Context, meal domain.Meal) (*domain.Meal, error)
	FindByID(ctx context.Context, id string) (*domain.Meal, error)
	List(ctx context.Context, ownerID string, skip, take int) ([]domain.Meal, error)
	Count(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, meal domain.Meal) (*domain.Meal, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// MealService handles meal business logic.
type MealService struct {
	meals MealStore
}

// NewMealService creates a new MealService.
func NewMealService(meals MealStore) *MealService {
	return &MealService{meals: meals}
}

// MealItemInput is one food entry within a meal request.
type MealItemInput struct {
	FoodID   string
	Quantity float64
	Unit     string
}

// CreateMealInput holds the caller-supplied fields for a new meal.
type CreateMealInput struct {
	Name        string
	Description *string
	Type        domain.MealType
	ConsumedAt  time.Time
	Items       []MealItemInput
}

// Create stores a new meal with its items, owned by the principal.
func (s *MealService) Create(ctx context.Context, principalID string, input CreateMealInput) (*domain.Meal, error) {
	items := make([]domain.MealItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, domain.MealItem{
			FoodID:   it.FoodID,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}

	return s.meals.Create(ctx, domain.Meal{
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		ConsumedAt:  input.ConsumedAt,
		CreatedBy:   principalID,
		Items:       items,
	})
}

// Get returns one of the principal's meals, items included.
func (s *MealService) Get(ctx context.Context, principalID, id string) (*domain.Meal, error) {
	return repository.RequireOwned(ctx, id, principalID,
		s.meals.FindByID, (*domain.Meal).OwnerID, "meal not found")
}

// List returns one page of the principal's meals.
func (s *MealService) List(ctx context.Context, principalID string, skip, take *int) (*ListResult[domain.Meal], error) {
	normSkip, normTake := pagination.Normalize(skip, take)

	meals, err := s.meals.List(ctx, principalID, normSkip, normTake)
	if err != nil {
		return nil, err
	}
	total, err := s.meals.Count(ctx, principalID)
	if err != nil {
		return nil, err
	}

	return newListResult(meals, pagination.NewResult(normSkip, normTake, total)), nil
}

// UpdateMealInput holds the caller-supplied fields for a meal update.
type UpdateMealInput struct {
	Name        string
	Description *string
	Type        domain.MealType
	ConsumedAt  time.Time
}

// Update modifies one of the principal's meals.
func (s *MealService) Update(ctx context.Context, principalID, id string, input UpdateMealInput) (*domain.Meal, error) {
	if _, err := s.Get(ctx, principalID, id); err != nil {
		return nil, err
	}

	return s.meals.Update(ctx, domain.Meal{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		ConsumedAt:  input.ConsumedAt,
		CreatedBy:   principalID,
	})
}

// Delete removes one of the principal's meals.
func (s *MealService) Delete(ctx context.Context, principalID, id string) error {
	if _, err := s.Get(ctx, principalID, id); err != nil {
		return err
	}
	return s.meals.Delete(ctx, id, principalID)
}
