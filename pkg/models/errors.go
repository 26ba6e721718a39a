package models

import "fmt"

// ValidationError – for invalid parameters or business rule violations.
// Supports errors.As.
//
// ValidationError represents an error due to invalid or malformed input.
type ValidationError struct {
	msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a new ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

// ConflictError – for attempts to create a resource that already exists,
// such as a duplicate username or a species already in the caller's pokedex.
// Supports errors.As.
type ConflictError struct {
	msg string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return e.msg
}

// NewConflictError creates a new ConflictError.
func NewConflictError(msg string) error {
	return &ConflictError{msg: msg}
}

// NotFoundError – for lookups of resources that do not exist for the caller.
// A record owned by a different user is reported with this same error so
// existence of other users' records never leaks.
// Supports errors.As.
type NotFoundError struct {
	msg string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.msg
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(msg string) error {
	return &NotFoundError{msg: msg}
}

// DatabaseError – for failures interacting with the persistence layer.
// Supports errors.As and errors.Unwrap.
//
// DatabaseError wraps errors related to database or SQL interactions.
// Will only be provided as a response from internal stores.
type DatabaseError struct {
	err error
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %v", e.err)
}

func (e *DatabaseError) Unwrap() error {
	return e.err
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(err error) error {
	return &DatabaseError{
		err: err,
	}
}
