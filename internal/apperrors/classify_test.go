package apperrors

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           codeUniqueViolation,
		ConstraintName: "foods_name_created_by_key",
		Detail:         "Key (name, created_by)=(Apple, u1) already exists.",
	}

	appErr := Classify(pgErr, "create", "food")

	assert.Equal(t, KindAlreadyExists, appErr.Kind)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, []string{"name", "created_by"}, appErr.Details["fields"])
	assert.Equal(t, "foods_name_created_by_key", appErr.Details["constraint"])
	assert.NotEmpty(t, appErr.Message)
}

func TestClassifyUniqueViolationWithoutDetail(t *testing.T) {
	pgErr := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "foods_barcode_key"}

	appErr := Classify(pgErr, "create", "food")

	assert.Equal(t, KindAlreadyExists, appErr.Kind)
	assert.NotContains(t, appErr.Details, "fields")
	assert.Equal(t, "foods_barcode_key", appErr.Details["constraint"])
}

func TestClassifyRecordNotFound(t *testing.T) {
	appErr := Classify(sql.ErrNoRows, "update", "meal")

	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestClassifyForeignKeyViolation(t *testing.T) {
	t.Run("caller-correctable reference", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           codeForeignKeyViolation,
			ConstraintName: "meal_items_food_id_fkey",
			Detail:         `Key (food_id)=(f1) is not present in table "foods".`,
		}

		appErr := Classify(pgErr, "create", "meal item")

		assert.Equal(t, KindDatabaseFailed, appErr.Kind)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, []string{"food_id"}, appErr.Details["fields"])
	})

	t.Run("no column metadata", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "meal_items_meal_id_fkey"}

		appErr := Classify(pgErr, "delete", "meal")

		assert.Equal(t, KindDatabaseFailed, appErr.Kind)
		assert.Equal(t, 500, appErr.StatusCode)
	})
}

func TestClassifyColumnValueErrors(t *testing.T) {
	for _, code := range []string{codeNotNullViolation, codeStringDataTooLong, codeInvalidTextValue} {
		t.Run(code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: code, ColumnName: "name"}

			appErr := Classify(pgErr, "create", "food")

			assert.Equal(t, KindDatabaseFailed, appErr.Kind)
			assert.Equal(t, 500, appErr.StatusCode)
			assert.Equal(t, "name", appErr.Details["column"])
		})
	}
}

func TestClassifyUnmappedEngineCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "40001", Message: "serialization failure"}

	appErr := Classify(pgErr, "update", "food")

	assert.Equal(t, KindDatabaseFailed, appErr.Kind)
	assert.Equal(t, 500, appErr.StatusCode)
	assert.Equal(t, "40001", appErr.Details["engineCode"])
	assert.NotEmpty(t, appErr.Message)
}

func TestClassifyQueryValidationError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42703", Message: `column "nmae" does not exist`}

	appErr := Classify(pgErr, "list", "food")

	assert.Equal(t, KindDatabaseFailed, appErr.Kind)
	assert.Equal(t, 500, appErr.StatusCode)
	assert.Equal(t, `column "nmae" does not exist`, appErr.Details["reason"])
}

func TestClassifyGenericError(t *testing.T) {
	appErr := Classify(errors.New("connection lost"), "get", "food")

	assert.Equal(t, KindDatabaseFailed, appErr.Kind)
	assert.Equal(t, 500, appErr.StatusCode)
	assert.NotEmpty(t, appErr.Message)
	assert.NotEmpty(t, appErr.Details["errorType"])
	assert.Equal(t, "connection lost", appErr.Details["reason"])
}

func TestClassifyWrappedEngineError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: codeUniqueViolation, Detail: "Key (barcode)=(123) already exists."}
	wrapped := fmt.Errorf("insert food: %w", pgErr)

	appErr := Classify(wrapped, "create", "food")

	assert.Equal(t, KindAlreadyExists, appErr.Kind)
	assert.Equal(t, []string{"barcode"}, appErr.Details["fields"])
}

func TestClassifyIdempotent(t *testing.T) {
	original := NotFound("food not found")

	classified := Classify(original, "get", "food")
	require.Same(t, original, classified)

	wrapped := fmt.Errorf("service: %w", original)
	classified = Classify(wrapped, "get", "food")
	require.Same(t, original, classified)
}

func TestClassifyPreservesCause(t *testing.T) {
	pgErr := &pgconn.PgError{Code: codeUniqueViolation}

	appErr := Classify(pgErr, "create", "food")

	assert.True(t, errors.Is(appErr, pgErr))
}
