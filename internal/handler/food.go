package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/service"
)

// FoodHandler handles food endpoints.
type FoodHandler struct {
	foods *service.FoodService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foods *service.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

// Register mounts the food routes on the given group.
func (h *FoodHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type foodRequest struct {
	Name        string              `json:"name" validate:"required,max=255"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Barcode     *string             `json:"barcode" validate:"omitempty,max=64"`
	Category    domain.FoodCategory `json:"category" validate:"required,oneof=fruit vegetable grain protein dairy other"`
}

func (req foodRequest) toInput() service.CreateFoodInput {
	return service.CreateFoodInput{
		Name:        req.Name,
		Description: req.Description,
		Barcode:     req.Barcode,
		Category:    req.Category,
	}
}

// Create stores a new food for the authenticated user.
func (h *FoodHandler) Create(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	food, err := h.foods.Create(c.Request().Context(), principalID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, food)
}

// List returns one page of the authenticated user's foods.
func (h *FoodHandler) List(c echo.Context) error {
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

	result, err := h.foods.List(c.Request().Context(), principalID, skip, take)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single food.
func (h *FoodHandler) Get(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	food, err := h.foods.Get(c.Request().Context(), principalID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, food)
}

// Update replaces a food's mutable fields.
func (h *FoodHandler) Update(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req foodRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	food, err := h.foods.Update(c.Request().Context(), principalID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, food)
}

// Delete removes a food.
func (h *FoodHandler) Delete(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := h.foods.Delete(c.Request().Context(), principalID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
