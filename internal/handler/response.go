package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

// ErrorBoundary is echo's global error handler. It is the single place
// that extracts and sanitizes errors: every failed request gets exactly
// one ExtractInfo + SanitizeForClient pass and one log line, both
// carrying the same correlation id.
type ErrorBoundary struct {
	environment string
}

// NewErrorBoundary creates an ErrorBoundary for the given environment
// name ("development" relaxes detail/stack filtering).
func NewErrorBoundary(environment string) *ErrorBoundary {
	return &ErrorBoundary{environment: environment}
}

// Handle implements echo.HTTPErrorHandler.
func (b *ErrorBoundary) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	err = mapFrameworkError(err)
	info := apperrors.ExtractInfo(err)
	correlationID := apperrors.CorrelationID()

	dev := b.environment == "development"
	payload := apperrors.SanitizeForClient(info, dev, b.environment)
	payload.CorrelationID = correlationID

	logFn := slog.Warn
	if info.StatusCode >= 500 {
		logFn = slog.Error
	}
	logFn("request failed",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", info.StatusCode,
		"code", info.Code,
		"correlation_id", correlationID,
		"error", err,
	)

	if jsonErr := c.JSON(info.StatusCode, payload); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr, "correlation_id", correlationID)
	}
}

// mapFrameworkError converts request-level sentinel errors into
// HTTP-shaped ones so they pass through extraction with the right status
// instead of falling into the unknown-error bucket. Persistence errors
// never arrive here unclassified.
func mapFrameworkError(err error) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication is required").SetInternal(err)
	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error()).SetInternal(err)
	default:
		return err
	}
}

// intQueryParam reads an optional integer query parameter. Absence is a
// nil pointer, not zero, so downstream normalization can tell the two
// apart.
func intQueryParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return &v, nil
}
