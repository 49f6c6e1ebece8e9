package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

// UserRepository handles user data access operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by their identity-provider subject.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, email, display_name, avatar_url, created_at, updated_at
		 FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.Classify(err, "get", "user")
	}
	return &user, nil
}

// Upsert creates the user on first login and refreshes profile fields on
// every later one. Returns the stored user.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (*domain.User, error) {
	var stored domain.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (id, email, display_name, avatar_url)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id)
		 DO UPDATE SET email = EXCLUDED.email,
		               display_name = EXCLUDED.display_name,
		               avatar_url = EXCLUDED.avatar_url,
		               updated_at = NOW()
		 RETURNING id, email, display_name, avatar_url, created_at, updated_at`,
		user.ID, user.Email, user.DisplayName, user.AvatarURL,
	).StructScan(&stored)
	if err != nil {
		return nil, apperrors.Classify(err, "upsert", "user")
	}
	return &stored, nil
}
