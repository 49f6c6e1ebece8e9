package repository

import (
	"context"
	"errors"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
)

// RequireOwned fetches an entity by id and enforces single-owner access.
// A missing entity and an entity owned by someone else produce the exact
// same error, so a caller probing ids cannot distinguish "does not exist"
// from "exists but is not yours".
//
// The check is a plain read with no transaction around a later mutation;
// ownership changing between this check and a subsequent write is
// tolerated. Mutating queries constrain on the owner id as well, which
// turns that race into a no-op rather than a cross-tenant write.
func RequireOwned[T any](
	ctx context.Context,
	id string,
	principalID string,
	fetch func(context.Context, string) (*T, error),
	ownerID func(*T) string,
	notFoundMessage string,
) (*T, error) {
	entity, err := fetch(ctx, id)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindNotFound {
			return nil, apperrors.NotFound(notFoundMessage)
		}
		return nil, err
	}

	if ownerID(entity) != principalID {
		return nil, apperrors.NotFound(notFoundMessage)
	}

	return entity, nil
}
