package pokedexstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Jose-https1/pokedex-api/internal/db/sqliteDB"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// ErrEntryNotFound is returned for reads, updates and deletes when no entry
// matches the (id, owner) pair. An entry that exists but belongs to another
// user produces this same error: callers can never tell "missing" from
// "not yours".
var ErrEntryNotFound = errors.New("pokedex entry not found")

// Store is the ownership-scoped CRUD layer over pokedex entries. Every
// operation takes the caller's identity and only ever touches rows owned by
// it.
type Store interface {
	// Create persists a new entry owned by params.OwnerID. Fails with a
	// *models.ConflictError when the owner already has the species.
	Create(ctx context.Context, params models.CreateEntryParams) (*models.PokedexEntry, error)

	// List returns the owner's entries. With zero-value params the order is
	// insertion order; filters and sorting follow params.
	List(ctx context.Context, ownerID int64, params models.ListEntriesParams) ([]models.PokedexEntry, error)

	// Get fetches one entry by id, scoped to the owner.
	Get(ctx context.Context, ownerID, entryID int64) (*models.PokedexEntry, error)

	// Update applies the non-nil fields of changes to the entry. Marking an
	// entry captured stamps its capture date if it has none.
	Update(ctx context.Context, ownerID, entryID int64, changes models.UpdateEntryParams) (*models.PokedexEntry, error)

	// Delete removes the entry. Deletion is immediate and irreversible.
	Delete(ctx context.Context, ownerID, entryID int64) error
}

// NewWithSqliteStore returns a Store backed by the given sqlite database.
func NewWithSqliteStore(db *sql.DB, logger *slog.Logger) Store {
	return &sqlitePokedexStore{
		db:      db,
		queries: *sqliteDB.New(db),
		log:     logger,
	}
}
