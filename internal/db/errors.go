package db

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mattn/go-sqlite3"
)

// DuplicateKeyError represents a unique constraint violation.
type DuplicateKeyError struct {
	Field string // The field that caused the constraint violation
	err   error  // The underlying database error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("duplicate key violation: %s already exists", e.Field)
	}
	return "duplicate key violation"
}

// Unwrap returns the underlying error for error chain support
func (e *DuplicateKeyError) Unwrap() error {
	return e.err
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(field string, err error) error {
	return &DuplicateKeyError{
		Field: field,
		err:   err,
	}
}

// WrapErrorIfDuplicateConstraint inspects err and, when it is a sqlite
// unique constraint violation, returns (true, *DuplicateKeyError) with the
// violated column name. Any other error is passed through unchanged.
func WrapErrorIfDuplicateConstraint(err error) (bool, error) {
	var sqliteErr sqlite3.Error
	switch {
	case errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		return true, NewDuplicateKeyError(extractViolatedFieldFromSQLite(err), err)
	default:
		return false, err
	}
}

// A pre-compiled regex to find the column name from a SQLite unique constraint error.
// It looks for the pattern "table.column" at the end of the error string.
var sqliteUniqueConstraintRegex = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)

// extractViolatedFieldFromSQLite attempts to parse the column name from a SQLite error.
func extractViolatedFieldFromSQLite(err error) string {
	// FindStringSubmatch returns the full match plus the captured group,
	// e.g. ["UNIQUE constraint failed: users.username", "username"]
	matches := sqliteUniqueConstraintRegex.FindStringSubmatch(err.Error())

	if len(matches) > 1 {
		return matches[1]
	}

	return "unknown"
}
