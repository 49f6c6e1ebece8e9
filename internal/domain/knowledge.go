package domain

import "time"

// KnowledgeContent is a quiz/learning article shared by all users.
type KnowledgeContent struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Summary   *string   `json:"summary,omitempty" db:"summary"`
	Body      string    `json:"body" db:"body"`
	Category  string    `json:"category" db:"category"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProgressStatus tracks how far a user got with a content item.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// UserProgress records one user's progress on one content item. At most
// one row exists per (user, content) pair.
type UserProgress struct {
	ID          string         `json:"id" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	ContentID   string         `json:"content_id" db:"content_id"`
	Status      ProgressStatus `json:"status" db:"status"`
	Score       *int           `json:"score,omitempty" db:"score"`
	CompletedAt *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
