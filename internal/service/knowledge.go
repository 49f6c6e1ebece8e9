package service

import (
	"context"
	"errors"
	"time"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/pagination"
)

// KnowledgeStore defines the data access interface consumed by
// KnowledgeService.
type KnowledgeStore interface {
	CreateContent(ctx context.Context, content domain.KnowledgeContent) (*domain.KnowledgeContent, error)
	FindContentByID(ctx context.Context, id string) (*domain.KnowledgeContent, error)
	ListContent(ctx context.Context, skip, take int) ([]domain.KnowledgeContent, error)
	CountContent(ctx context.Context) (int, error)
	ProgressByContentIDs(ctx context.Context, userID string, contentIDs []string) (map[string]domain.UserProgress, error)
	UpsertProgress(ctx context.Context, progress domain.UserProgress) (*domain.UserProgress, error)
}

// KnowledgeService handles knowledge content and per-user progress.
type KnowledgeService struct {
	contents KnowledgeStore
}

// NewKnowledgeService creates a new KnowledgeService.
func NewKnowledgeService(contents KnowledgeStore) *KnowledgeService {
	return &KnowledgeService{contents: contents}
}

// ContentWithProgress is a content item with the requesting user's
// progress attached when one exists.
type ContentWithProgress struct {
	domain.KnowledgeContent
	Progress *domain.UserProgress `json:"progress,omitempty"`
}

// ListWithProgress returns one page of content with the principal's
// progress joined in. Progress for the whole page is fetched in a single
// batched query and joined in memory, so a list request issues at most
// two content-side queries plus one progress query regardless of page
// size. Content without progress is returned without the field.
func (s *KnowledgeService) ListWithProgress(ctx context.Context, principalID string, skip, take *int) (*ListResult[ContentWithProgress], error) {
	normSkip, normTake := pagination.Normalize(skip, take)

	contents, err := s.contents.ListContent(ctx, normSkip, normTake)
	if err != nil {
		return nil, err
	}
	total, err := s.contents.CountContent(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(contents))
	for _, c := range contents {
		ids = append(ids, c.ID)
	}

	progressByID, err := s.contents.ProgressByContentIDs(ctx, principalID, ids)
	if err != nil {
		return nil, err
	}

	joined := make([]ContentWithProgress, 0, len(contents))
	for _, c := range contents {
		entry := ContentWithProgress{KnowledgeContent: c}
		if p, ok := progressByID[c.ID]; ok {
			entry.Progress = &p
		}
		joined = append(joined, entry)
	}

	return newListResult(joined, pagination.NewResult(normSkip, normTake, total)), nil
}

// GetContent returns a single content item. Content is shared, so there
// is no ownership check here.
func (s *KnowledgeService) GetContent(ctx context.Context, id string) (*domain.KnowledgeContent, error) {
	return s.contents.FindContentByID(ctx, id)
}

// CreateContentInput holds the fields for a new content item.
type CreateContentInput struct {
	Title    string
	Summary  *string
	Body     string
	Category string
}

// CreateContent stores a new content item attributed to the principal.
func (s *KnowledgeService) CreateContent(ctx context.Context, principalID string, input CreateContentInput) (*domain.KnowledgeContent, error) {
	return s.contents.CreateContent(ctx, domain.KnowledgeContent{
		Title:     input.Title,
		Summary:   input.Summary,
		Body:      input.Body,
		Category:  input.Category,
		CreatedBy: principalID,
	})
}

// SaveProgressInput holds the fields for a progress update.
type SaveProgressInput struct {
	Status domain.ProgressStatus
	Score  *int
}

// SaveProgress records the principal's progress on a content item. The
// content must exist; the progress row is created or updated in place.
func (s *KnowledgeService) SaveProgress(ctx context.Context, principalID, contentID string, input SaveProgressInput) (*domain.UserProgress, error) {
	if _, err := s.contents.FindContentByID(ctx, contentID); err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindNotFound {
			return nil, apperrors.NotFound("knowledge content not found")
		}
		return nil, err
	}

	progress := domain.UserProgress{
		UserID:    principalID,
		ContentID: contentID,
		Status:    input.Status,
		Score:     input.Score,
	}
	if input.Status == domain.ProgressCompleted {
		now := time.Now()
		progress.CompletedAt = &now
	}

	return s.contents.UpsertProgress(ctx, progress)
}
