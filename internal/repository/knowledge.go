package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

// KnowledgeRepository handles knowledge content and per-user progress.
type KnowledgeRepository struct {
	db *sqlx.DB
}

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(db *sqlx.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// CreateContent inserts a content item and returns the stored row.
func (r *KnowledgeRepository) CreateContent(ctx context.Context, content domain.KnowledgeContent) (*domain.KnowledgeContent, error) {
	var created domain.KnowledgeContent
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO knowledge_contents (title, summary, body, category, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, summary, body, category, created_by, created_at, updated_at`,
		content.Title, content.Summary, content.Body, content.Category, content.CreatedBy,
	).StructScan(&created)
	if err != nil {
		return nil, apperrors.Classify(err, "create", "knowledge content")
	}
	return &created, nil
}

// FindContentByID retrieves a content item by its id.
func (r *KnowledgeRepository) FindContentByID(ctx context.Context, id string) (*domain.KnowledgeContent, error) {
	var content domain.KnowledgeContent
	err := r.db.GetContext(ctx, &content,
		`SELECT id, title, summary, body, category, created_by, created_at, updated_at
		 FROM knowledge_contents WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.Classify(err, "get", "knowledge content")
	}
	return &content, nil
}

// ListContent returns one page of content, newest first. Content is
// shared across users, so there is no owner filter here.
func (r *KnowledgeRepository) ListContent(ctx context.Context, skip, take int) ([]domain.KnowledgeContent, error) {
	contents := []domain.KnowledgeContent{}
	err := r.db.SelectContext(ctx, &contents,
		`SELECT id, title, summary, body, category, created_by, created_at, updated_at
		 FROM knowledge_contents
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, take, skip)
	if err != nil {
		return nil, apperrors.Classify(err, "list", "knowledge content")
	}
	return contents, nil
}

// CountContent returns the total number of content items.
func (r *KnowledgeRepository) CountContent(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM knowledge_contents`)
	if err != nil {
		return 0, apperrors.Classify(err, "count", "knowledge content")
	}
	return total, nil
}

// ProgressByContentIDs fetches the user's progress rows for a whole page
// of content ids in a single query and indexes them by content id. This
// keeps a list request at two queries total no matter the page size.
func (r *KnowledgeRepository) ProgressByContentIDs(ctx context.Context, userID string, contentIDs []string) (map[string]domain.UserProgress, error) {
	if len(contentIDs) == 0 {
		return map[string]domain.UserProgress{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, user_id, content_id, status, score, completed_at, updated_at
		 FROM user_progress
		 WHERE user_id = ? AND content_id IN (?)`, userID, contentIDs)
	if err != nil {
		return nil, apperrors.Classify(err, "list", "progress")
	}

	rows := []domain.UserProgress{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, apperrors.Classify(err, "list", "progress")
	}

	index := make(map[string]domain.UserProgress, len(rows))
	for _, p := range rows {
		index[p.ContentID] = p
	}
	return index, nil
}

// UpsertProgress creates or updates the user's progress on one content
// item, keyed by the (user_id, content_id) unique constraint.
func (r *KnowledgeRepository) UpsertProgress(ctx context.Context, progress domain.UserProgress) (*domain.UserProgress, error) {
	var stored domain.UserProgress
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO user_progress (user_id, content_id, status, score, completed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, content_id)
		 DO UPDATE SET status = EXCLUDED.status,
		               score = EXCLUDED.score,
		               completed_at = EXCLUDED.completed_at,
		               updated_at = NOW()
		 RETURNING id, user_id, content_id, status, score, completed_at, updated_at`,
		progress.UserID, progress.ContentID, progress.Status, progress.Score, progress.CompletedAt,
	).StructScan(&stored)
	if err != nil {
		return nil, apperrors.Classify(err, "save", "progress")
	}
	return &stored, nil
}
