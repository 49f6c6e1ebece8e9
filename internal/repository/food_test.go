package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

func TestFoodCreateClassifiesUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodRepository(db)

	mock.ExpectQuery("INSERT INTO foods").
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "foods_barcode_key",
			Detail:         "Key (barcode)=(4006381333931) already exists.",
		})

	_, err := repo.Create(context.Background(), domain.Food{
		Name:      "Chocolate",
		Category:  domain.FoodCategoryOther,
		CreatedBy: "u1",
	})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindAlreadyExists, appErr.Kind)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, []string{"barcode"}, appErr.Details["fields"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodFindByIDClassifiesMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM foods").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodListUsesNormalizedWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM foods").
		WithArgs("u1", 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "barcode", "category", "created_by", "created_at", "updated_at"}).
			AddRow("f1", "Apple", nil, nil, "fruit", "u1", now, now))

	foods, err := repo.List(context.Background(), "u1", 20, 10)

	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Apple", foods[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodDeleteMissingRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodRepository(db)

	mock.ExpectExec("DELETE FROM foods").
		WithArgs("f1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "f1", "u1")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
