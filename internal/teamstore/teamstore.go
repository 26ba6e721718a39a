package teamstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Jose-https1/pokedex-api/internal/db/sqliteDB"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// ErrTeamNotFound covers both a missing team and a team owned by a
// different trainer, mirroring the pokedex store's ownership-blind lookups.
var ErrTeamNotFound = errors.New("team not found")

// CreateTeamParams describes a new team. PokedexEntryIDs become members in
// order, positions 1..len.
type CreateTeamParams struct {
	TrainerID       int64
	Name            string
	Description     *string
	PokedexEntryIDs []int64
}

// UpdateTeamParams renames a team and, when PokedexEntryIDs is non-nil,
// replaces its member list.
type UpdateTeamParams struct {
	Name            *string
	Description     *string
	PokedexEntryIDs []int64
}

// Store manages battle teams. Teams hold 1..models.MaxTeamSize members,
// each of which must be a pokedex entry owned by the same trainer.
type Store interface {
	Create(ctx context.Context, params CreateTeamParams) (*models.Team, error)
	List(ctx context.Context, trainerID int64) ([]models.Team, error)
	Get(ctx context.Context, trainerID, teamID int64) (*models.Team, error)
	Update(ctx context.Context, trainerID, teamID int64, params UpdateTeamParams) (*models.Team, error)
	Delete(ctx context.Context, trainerID, teamID int64) error
}

// NewWithSqliteStore returns a Store backed by the given sqlite database.
func NewWithSqliteStore(db *sql.DB, logger *slog.Logger) Store {
	return &sqliteTeamStore{
		db:      db,
		queries: *sqliteDB.New(db),
		log:     logger,
	}
}
