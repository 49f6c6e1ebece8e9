package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

func progressFixture(userID, contentID string, score *int, completedAt *time.Time) domain.UserProgress {
	return domain.UserProgress{
		UserID:      userID,
		ContentID:   contentID,
		Status:      domain.ProgressCompleted,
		Score:       score,
		CompletedAt: completedAt,
	}
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "pgx"), mock
}

func TestProgressByContentIDsBatchesIntoOneQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKnowledgeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "content_id", "status", "score", "completed_at", "updated_at"}).
		AddRow("p1", "u1", "c1", "completed", 80, now, now).
		AddRow("p2", "u1", "c3", "in_progress", nil, nil, now)

	// A single query covers the whole page of content ids.
	mock.ExpectQuery("SELECT (.+) FROM user_progress").
		WithArgs("u1", "c1", "c2", "c3").
		WillReturnRows(rows)

	index, err := repo.ProgressByContentIDs(context.Background(), "u1", []string{"c1", "c2", "c3"})

	require.NoError(t, err)
	assert.Len(t, index, 2)
	assert.Contains(t, index, "c1")
	assert.Contains(t, index, "c3")
	assert.NotContains(t, index, "c2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressByContentIDsEmptyPageSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKnowledgeRepository(db)

	index, err := repo.ProgressByContentIDs(context.Background(), "u1", nil)

	require.NoError(t, err)
	assert.Empty(t, index)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProgressReturnsStoredRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKnowledgeRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO user_progress").
		WithArgs("u1", "c1", "completed", 90, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content_id", "status", "score", "completed_at", "updated_at"}).
			AddRow("p1", "u1", "c1", "completed", 90, now, now))

	score := 90
	stored, err := repo.UpsertProgress(context.Background(), progressFixture("u1", "c1", &score, &now))

	require.NoError(t, err)
	assert.Equal(t, "p1", stored.ID)
	assert.Equal(t, "c1", stored.ContentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
