package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
)

type ownedRecord struct {
	id    string
	owner string
}

func (r *ownedRecord) ownerID() string { return r.owner }

func fetchFrom(records map[string]*ownedRecord) func(context.Context, string) (*ownedRecord, error) {
	return func(_ context.Context, id string) (*ownedRecord, error) {
		rec, ok := records[id]
		if !ok {
			return nil, apperrors.NotFound("record not found")
		}
		return rec, nil
	}
}

func TestRequireOwnedReturnsOwnedEntity(t *testing.T) {
	fetch := fetchFrom(map[string]*ownedRecord{"r1": {id: "r1", owner: "alice"}})

	got, err := RequireOwned(context.Background(), "r1", "alice", fetch, (*ownedRecord).ownerID, "record not found")

	require.NoError(t, err)
	assert.Equal(t, "r1", got.id)
}

func TestRequireOwnedCollapsesNotFoundAndNotOwned(t *testing.T) {
	fetch := fetchFrom(map[string]*ownedRecord{"r1": {id: "r1", owner: "alice"}})

	_, missingErr := RequireOwned(context.Background(), "does-not-exist", "bob", fetch, (*ownedRecord).ownerID, "record not found")
	_, foreignErr := RequireOwned(context.Background(), "r1", "bob", fetch, (*ownedRecord).ownerID, "record not found")

	var missing, foreign *apperrors.Error
	require.ErrorAs(t, missingErr, &missing)
	require.ErrorAs(t, foreignErr, &foreign)

	// A caller probing ids must not be able to tell the two apart.
	assert.Equal(t, missing.Kind, foreign.Kind)
	assert.Equal(t, missing.StatusCode, foreign.StatusCode)
	assert.Equal(t, missing.Message, foreign.Message)
	assert.Equal(t, 404, foreign.StatusCode)
}

func TestRequireOwnedPropagatesOtherErrors(t *testing.T) {
	dbErr := apperrors.DatabaseFailed("query failed", nil, nil)
	fetch := func(context.Context, string) (*ownedRecord, error) {
		return nil, dbErr
	}

	_, err := RequireOwned(context.Background(), "r1", "alice", fetch, (*ownedRecord).ownerID, "record not found")

	assert.True(t, errors.Is(err, dbErr))
}

func TestRequireOwnedUsesProvidedMessage(t *testing.T) {
	fetch := fetchFrom(nil)

	_, err := RequireOwned(context.Background(), "r1", "alice", fetch, (*ownedRecord).ownerID, "food not found")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "food not found", appErr.Message)
}
