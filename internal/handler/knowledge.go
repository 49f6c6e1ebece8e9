package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/service"
)

// KnowledgeHandler handles knowledge content and progress endpoints.
type KnowledgeHandler struct {
	knowledge *service.KnowledgeService
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(knowledge *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge}
}

// Register mounts the knowledge routes on the given group.
func (h *KnowledgeHandler) Register(g *echo.Group) {
	g.POST("", h.CreateContent)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id/progress", h.SaveProgress)
}

type createContentRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Summary  *string `json:"summary" validate:"omitempty,max=1000"`
	Body     string  `json:"body" validate:"required"`
	Category string  `json:"category" validate:"required,max=64"`
}

type saveProgressRequest struct {
	Status domain.ProgressStatus `json:"status" validate:"required,oneof=not_started in_progress completed"`
	Score  *int                  `json:"score" validate:"omitempty,min=0,max=100"`
}

// CreateContent stores a new content item.
func (h *KnowledgeHandler) CreateContent(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content, err := h.knowledge.CreateContent(c.Request().Context(), principalID, service.CreateContentInput{
		Title:    req.Title,
		Summary:  req.Summary,
		Body:     req.Body,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, content)
}

// List returns one page of content with the authenticated user's
// progress attached.
func (h *KnowledgeHandler) List(c echo.Context) error {
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

	result, err := h.knowledge.ListWithProgress(c.Request().Context(), principalID, skip, take)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single content item.
func (h *KnowledgeHandler) Get(c echo.Context) error {
	content, err := h.knowledge.GetContent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// SaveProgress records the authenticated user's progress on a content
// item.
func (h *KnowledgeHandler) SaveProgress(c echo.Context) error {
	principalID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req saveProgressRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	progress, err := h.knowledge.SaveProgress(c.Request().Context(), principalID, c.Param("id"), service.SaveProgressInput{
		Status: req.Status,
		Score:  req.Score,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, progress)
}
