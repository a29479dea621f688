// Package apperrors defines the error taxonomy shared by the schema,
// store and seed layers. Every constraint failure surfaces as a typed error
// identifying the violated constraint; nothing is retried or repaired.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a lookup by id returned nothing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyProvisioned indicates that the well-known default identifiers are
// already taken by conflicting rows.
var ErrAlreadyProvisioned = errors.New("store already provisioned with conflicting defaults")

// ErrSchemaConflict indicates that the store already contains a mismatched
// top-level structure and Initialize refused to touch it.
var ErrSchemaConflict = errors.New("existing schema does not match the expected structure")

// ErrUnknownKind indicates a reference to an entity kind that is not in the
// registry.
var ErrUnknownKind = errors.New("unknown entity kind")

// ErrIntegrityDisabled indicates that foreign-key enforcement could not be
// asserted on the connection.
var ErrIntegrityDisabled = errors.New("referential integrity is not enforced on this connection")

// ConstraintKind classifies a constraint violation.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCycle      ConstraintKind = "cycle"
)

// ConstraintViolation reports a unique, foreign-key, not-null or cycle
// violation on a specific entity. Field is best-effort and may be empty when
// the driver error does not identify the column.
type ConstraintViolation struct {
	Entity string
	Field  string
	Kind   ConstraintKind
	Err    error
}

func (e *ConstraintViolation) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s constraint violated on %s.%s", e.Kind, e.Entity, e.Field)
	}
	return fmt.Sprintf("%s constraint violated on %s", e.Kind, e.Entity)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// IsConstraint reports whether err is a ConstraintViolation of the given kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return cv.Kind == kind
	}
	return false
}

// SerializationError reports a malformed serialized blob column (settings,
// roles) encountered while scanning a row.
type SerializationError struct {
	Column string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("malformed %s blob: %v", e.Column, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
