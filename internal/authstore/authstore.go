package authstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Jose-https1/pokedex-api/internal/db/sqliteDB"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// ErrInvalidCredentials is returned by Verify for both unknown usernames and
// wrong passwords. The two cases are deliberately indistinguishable so the
// login endpoint cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store defines a unified interface for interacting with the credential
// datastore. It abstracts storage-specific implementations behind consistent
// operations used by the HTTP layer.
//
// All methods must return meaningful error types as defined in the models
// package (ValidationError, ConflictError, DatabaseError) or the sentinel
// errors declared in this package.
type Store interface {
	// Register creates a new account after validating the password policy
	// and username uniqueness. Only a salted one-way hash of the password
	// is persisted. Fails with a *models.ValidationError for a weak
	// password and a *models.ConflictError for a duplicate username.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Verify checks a username/password pair against the stored hash.
	// Any mismatch, including an unknown username, yields
	// ErrInvalidCredentials.
	Verify(ctx context.Context, username, password string) (*models.User, error)

	// GetUserByUsername resolves an account by username, used when turning
	// a validated token subject back into a user. Returns
	// *models.NotFoundError when no such account exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// Ping reports whether the underlying datastore is reachable.
	Ping() error
}

// NewWithSqliteStore returns a Store backed by the given sqlite database.
func NewWithSqliteStore(db *sql.DB, logger *slog.Logger) Store {
	return &sqliteAuthStore{
		db:      db,
		queries: *sqliteDB.New(db),
		log:     logger,
	}
}
