package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/service"
)

// MealHandler handles meal endpoints.
type MealHandler struct {
	meals *service.MealService
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

// Register mounts the meal routes on the given group.
func (h *MealHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type mealItemRequest struct {
	FoodID   string  `json:"food_id" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required,max=32"`
}

type createMealRequest struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Description *string           `json:"description" validate:"omitempty,max=2000"`
	Type        domain.MealType   `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	ConsumedAt  time.Time         `json:"consumed_at" validate:"required"`
	Items       []mealItemRequest `json:"items" validate:"omitempty,dive"`
}

type updateMealRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Type        domain.MealType `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	ConsumedAt  time.Time       `json:"consumed_at" validate:"required"`
}

// Create logs a new meal for the authenticated user.
func (h *MealHandler) Create(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createMealRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]service.MealItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.MealItemInput{
			FoodID:   it.FoodID,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}

	meal, err := h.meals.Create(c.Request().Context(), principalID, service.CreateMealInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		ConsumedAt:  req.ConsumedAt,
		Items:       items,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, meal)
}

// List returns one page of the authenticated user's meals.
func (h *MealHandler) List(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	skip, err := intQueryParam(c, "skip")
	if err != nil {
		return err
	}
	take, err := intQueryParam(c, "take")
	if err != nil {
		return err
	}

	result, err := h.meals.List(c.Request().Context(), principalID, skip, take)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single meal with its items.
func (h *MealHandler) Get(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	meal, err := h.meals.Get(c.Request().Context(), principalID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meal)
}

// Update replaces a meal's mutable fields.
func (h *MealHandler) Update(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req updateMealRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meal, err := h.meals.Update(c.Request().Context(), principalID, c.Param("id"), service.UpdateMealInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		ConsumedAt:  req.ConsumedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meal)
}

// Delete removes a meal.
func (h *MealHandler) Delete(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := h.meals.Delete(c.Request().Context(), principalID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
