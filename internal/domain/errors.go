package domain

import "fmt"

// NotFoundError indicates a lookup by a key that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConstraintViolationError indicates a primary or composite unique key collision.
type ConstraintViolationError struct {
	Message string
}

func (e *ConstraintViolationError) Error() string { return e.Message }

// ForeignKeyViolationError indicates a reference to a missing parent row,
// or a delete blocked by dependent rows.
type ForeignKeyViolationError struct {
	Message string
}

func (e *ForeignKeyViolationError) Error() string { return e.Message }

// ValidationError indicates a field value outside its declared constraints.
type ValidationError struct {
	Entity  EntityName
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Message)
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrConstraintViolation creates a ConstraintViolationError with a formatted message.
func ErrConstraintViolation(format string, args ...any) *ConstraintViolationError {
	return &ConstraintViolationError{Message: fmt.Sprintf(format, args...)}
}

// ErrForeignKeyViolation creates a ForeignKeyViolationError with a formatted message.
func ErrForeignKeyViolation(format string, args ...any) *ForeignKeyViolationError {
	return &ForeignKeyViolationError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError that is not tied to a field.
func ErrValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrFieldValidation creates a ValidationError for one field of an entity.
func ErrFieldValidation(entity EntityName, field, format string, args ...any) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Message: fmt.Sprintf(format, args...)}
}
