package service

import (
	"context"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/pagination"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/repository"
)

// FoodStore defines the food data access interface consumed by FoodService.
type FoodStore interface {
	Create(ctx context.Context, food domain.Food) (*domain.Food, error)
	FindByID(ctx context.Context, id string) (*domain.Food, error)
	List(ctx context.Context, ownerID string, skip, take int) ([]domain.Food, error)
	Count(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, food domain.Food) (*domain.Food, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// FoodService handles food business logic.
type FoodService struct {
	foods FoodStore
}

// NewFoodService creates a new FoodService.
func NewFoodService(foods FoodStore) *FoodService {
	return &FoodService{foods: foods}
}

// CreateFoodInput holds the caller-supplied fields for a new food.
type CreateFoodInput struct {
	Name        string
	Description *string
	Barcode     *string
	Category    domain.FoodCategory
}

// Create stores a new food owned by the principal.
func (s *FoodService) Create(ctx context.Context, principalID string, input CreateFoodInput) (*domain.Food, error) {
	return s.foods.Create(ctx, domain.Food{
		Name:        input.Name,
		Description: input.Description,
		Barcode:     input.Barcode,
		Category:    input.Category,
		CreatedBy:   principalID,
	})
}

// Get returns one of the principal's foods.
func (s *FoodService) Get(ctx context.Context, principalID, id string) (*domain.Food, error) {
	return repository.RequireOwned(ctx, id, principalID,
		s.foods.FindByID, (*domain.Food).OwnerID, "food not found")
}

// List returns one page of the principal's foods.
func (s *FoodService) List(ctx context.Context, principalID string, skip, take *int) (*ListResult[domain.Food], error) {
	normSkip, normTake := pagination.Normalize(skip, take)

	foods, err := s.foods.List(ctx, principalID, normSkip, normTake)
	if err != nil {
		return nil, err
	}
	total, err := s.foods.Count(ctx, principalID)
	if err != nil {
		return nil, err
	}

	return newListResult(foods, pagination.NewResult(normSkip, normTake, total)), nil
}

// Update modifies one of the principal's foods. The ownership check runs
// before any write, so a failed check leaves no partial state.
func (s *FoodService) Update(ctx context.Context, principalID, id string, input CreateFoodInput) (*domain.Food, error) {
	if _, err := s.Get(ctx, principalID, id); err != nil {
		return nil, err
	}

	return s.foods.Update(ctx, domain.Food{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Barcode:     input.Barcode,
		Category:    input.Category,
		CreatedBy:   principalID,
	})
}

// Delete removes one of the principal's foods.
func (s *FoodService) Delete(ctx context.Context, principalID, id string) error {
	if _, err := s.Get(ctx, principalID, id); err != nil {
		return err
	}
	return s.foods.Delete(ctx, id, principalID)
}
