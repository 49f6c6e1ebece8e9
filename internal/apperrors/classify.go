package apperrors

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes with a dedicated mapping. Everything else that
// still carries a SQLSTATE falls into the recognized-but-unmapped bucket.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeStringDataTooLong   = "22001"
	codeInvalidTextValue    = "22P02"
)

// decoded is the tagged form a raw persistence error is reduced to
// before classification.
type decodedKind int

const (
	decodedEngine decodedKind = iota
	decodedValidation
	decodedNotFound
	decodedGeneric
)

type decoded struct {
	kind       decodedKind
	engine     *pgconn.PgError // engine-known failure with SQLSTATE + metadata
	validation string          // query rejected by the engine's parser/planner
	generic    error           // anything else
}

func decode(err error) decoded {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 42 is the engine refusing the statement itself
		// (syntax, unknown column, type mismatch in the query).
		if strings.HasPrefix(pgErr.Code, "42") {
			return decoded{kind: decodedValidation, validation: pgErr.Message}
		}
		return decoded{kind: decodedEngine, engine: pgErr}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return decoded{kind: decodedNotFound}
	}
	return decoded{kind: decodedGeneric, generic: err}
}

// Classify converts a raw persistence error into a taxonomy Error. It is
// idempotent: an already-classified error passes through unchanged.
// operation and resource name the failing call for the error message,
// e.g. Classify(err, "create", "food").
func Classify(err error, operation, resource string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	d := decode(err)
	switch d.kind {
	case decodedEngine:
		return classifyEngine(d.engine, operation, resource)
	case decodedValidation:
		return DatabaseFailed(
			fmt.Sprintf("failed to %s %s: invalid query", operation, resource),
			map[string]any{"reason": d.validation},
			err,
		)
	case decodedNotFound:
		return NotFound(fmt.Sprintf("%s not found", resource))
	default:
		return DatabaseFailed(
			fmt.Sprintf("failed to %s %s", operation, resource),
			map[string]any{
				"errorType": fmt.Sprintf("%T", d.generic),
				"reason":    d.generic.Error(),
			},
			err,
		)
	}
}

func classifyEngine(pgErr *pgconn.PgError, operation, resource string) *Error {
	switch pgErr.Code {
	case codeUniqueViolation:
		details := map[string]any{"constraint": pgErr.ConstraintName}
		if fields := constraintFields(pgErr.Detail); len(fields) > 0 {
			details["fields"] = fields
		}
		e := AlreadyExists(fmt.Sprintf("%s already exists", resource), details)
		e.Cause = pgErr
		return e

	case codeForeignKeyViolation:
		details := map[string]any{"constraint": pgErr.ConstraintName}
		fields := constraintFields(pgErr.Detail)
		if len(fields) > 0 {
			details["fields"] = fields
		}
		e := DatabaseFailed(
			fmt.Sprintf("failed to %s %s: related record constraint", operation, resource),
			details,
			pgErr,
		)
		// When the engine names the offending reference columns the
		// caller can correct the request, so report it as their error.
		if len(fields) > 0 {
			e.StatusCode = 400
		}
		return e

	case codeNotNullViolation, codeStringDataTooLong, codeInvalidTextValue:
		return DatabaseFailed(
			fmt.Sprintf("failed to %s %s: invalid column value", operation, resource),
			map[string]any{"column": pgErr.ColumnName},
			pgErr,
		)

	default:
		return DatabaseFailed(
			fmt.Sprintf("failed to %s %s", operation, resource),
			map[string]any{"engineCode": pgErr.Code, "reason": pgErr.Message},
			pgErr,
		)
	}
}

// constraintDetailRe matches the column list in Postgres constraint
// details, e.g. `Key (name, created_by)=(Apple, u1) already exists.`
var constraintDetailRe = regexp.MustCompile(`Key \(([^)]+)\)=`)

func constraintFields(detail string) []string {
	m := constraintDetailRe.FindStringSubmatch(detail)
	if m == nil {
		return nil
	}
	parts := strings.Split(m[1], ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields
}
