// Package apperrors defines the closed error taxonomy shared by every
// resource module and the classification of persistence failures into it.
package apperrors

import "fmt"

// Kind identifies one entry of the closed error taxonomy.
type Kind int

const (
	// KindNotFound covers both "entity absent" and "entity not owned by
	// the caller"; the two are deliberately indistinguishable.
	KindNotFound Kind = iota

	// KindAlreadyExists is raised on uniqueness violations during create
	// or update.
	KindAlreadyExists

	// KindDatabaseFailed covers every other persistence-layer failure,
	// including validation errors in the query itself and engine codes
	// with no dedicated mapping.
	KindDatabaseFailed
)

// Code returns the stable string code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindNotFound:
		return "RESOURCE_NOT_FOUND"
	case KindAlreadyExists:
		return "RESOURCE_ALREADY_EXISTS"
	case KindDatabaseFailed:
		return "DATABASE_OPERATION_FAILED"
	default:
		return "UNKNOWN_ERROR"
	}
}

// DefaultStatus returns the conventional HTTP status for the kind.
func (k Kind) DefaultStatus() int {
	switch k {
	case KindNotFound:
		return 404
	case KindAlreadyExists:
		return 409
	case KindDatabaseFailed:
		return 500
	default:
		return 500
	}
}

// FriendlyMessage returns the user-safe phrasing for the kind. The switch
// is exhaustive over the taxonomy so a new kind without a phrasing is
// caught in review rather than silently falling back.
func (k Kind) FriendlyMessage() string {
	switch k {
	case KindNotFound:
		return "The requested item could not be found."
	case KindAlreadyExists:
		return "An item with these details already exists."
	case KindDatabaseFailed:
		return "We could not complete your request. Please try again later."
	default:
		return genericFriendlyMessage
	}
}

const genericFriendlyMessage = "Something went wrong. Please try again."

// Error is a classified business error. It is created at the point a
// failure is classified and treated as immutable afterwards. Cause is
// preserved for logging but never serialized to clients.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Details    map[string]any
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

// Unwrap exposes the wrapped lower-level error to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NotFound builds a RESOURCE_NOT_FOUND error.
func NotFound(message string) *Error {
	return &Error{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: KindNotFound.DefaultStatus(),
	}
}

// AlreadyExists builds a RESOURCE_ALREADY_EXISTS error.
func AlreadyExists(message string, details map[string]any) *Error {
	return &Error{
		Kind:       KindAlreadyExists,
		Message:    message,
		StatusCode: KindAlreadyExists.DefaultStatus(),
		Details:    details,
	}
}

// DatabaseFailed builds a DATABASE_OPERATION_FAILED error wrapping cause.
func DatabaseFailed(message string, details map[string]any, cause error) *Error {
	return &Error{
		Kind:       KindDatabaseFailed,
		Message:    message,
		StatusCode: KindDatabaseFailed.DefaultStatus(),
		Details:    details,
		Cause:      cause,
	}
}
