package pokedexstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Jose-https1/pokedex-api/internal/db"
	"github.com/Jose-https1/pokedex-api/internal/db/sqliteDB"
	"github.com/Jose-https1/pokedex-api/internal/logutil"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

type sqlitePokedexStore struct {
	db      *sql.DB
	queries sqliteDB.Queries
	log     *slog.Logger
}

func (s *sqlitePokedexStore) Create(ctx context.Context, params models.CreateEntryParams) (*models.PokedexEntry, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Create")()
	errMsg := "failed to create pokedex entry"

	arg := sqliteDB.CreateEntryParams{
		OwnerID:       params.OwnerID,
		PokemonID:     params.PokemonID,
		PokemonName:   params.Name,
		PokemonSprite: params.Sprite,
		Nickname:      sqliteDB.NullStringFromPtr(params.Nickname),
		Notes:         sqliteDB.NullStringFromPtr(params.Notes),
		IsCaptured:    params.IsCaptured,
		Favorite:      params.Favorite,
	}
	if params.IsCaptured {
		arg.CaptureDate = sql.NullInt64{Int64: time.Now().Unix(), Valid: true}
	}

	sqlEntry, err := s.queries.CreateEntry(ctx, arg)
	if err != nil {
		if dup, dupErr := db.WrapErrorIfDuplicateConstraint(err); dup {
			s.log.Debug("entry rejected, species already in pokedex",
				"owner_id", params.OwnerID, "pokemon_id", params.PokemonID)
			return nil, models.NewConflictError(dupErr.Error())
		}
		return nil, logutil.LogAndWrapErr(s.log, errMsg,
			models.NewDatabaseError(err))
	}

	entry := sqlEntry.ToEntryModel()
	return &entry, nil
}

func (s *sqlitePokedexStore) List(ctx context.Context, ownerID int64, params models.ListEntriesParams) ([]models.PokedexEntry, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "List")()

	sqlEntries, err := s.queries.ListEntriesByOwner(ctx, sqliteDB.ListEntriesParams{
		OwnerID:    ownerID,
		Captured:   sqliteDB.NullBoolFromPtr(params.Captured),
		Favorite:   sqliteDB.NullBoolFromPtr(params.Favorite),
		SortColumn: params.Sort,
		Descending: params.Order == "desc",
		Limit:      int64(params.Limit),
		Offset:     int64(params.Offset),
	})
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "failed to list pokedex entries",
			models.NewDatabaseError(err))
	}

	entries := make([]models.PokedexEntry, 0, len(sqlEntries))
	for _, sqlEntry := range sqlEntries {
		entries = append(entries, sqlEntry.ToEntryModel())
	}
	return entries, nil
}

func (s *sqlitePokedexStore) Get(ctx context.Context, ownerID, entryID int64) (*models.PokedexEntry, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Get", "entry_id", entryID)()

	sqlEntry, err := s.queries.GetEntryByIDAndOwner(ctx, entryID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, logutil.LogAndWrapErr(s.log, "failed to get pokedex entry",
			models.NewDatabaseError(err))
	}

	entry := sqlEntry.ToEntryModel()
	return &entry, nil
}

func (s *sqlitePokedexStore) Update(ctx context.Context, ownerID, entryID int64, changes models.UpdateEntryParams) (*models.PokedexEntry, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Update", "entry_id", entryID)()

	// Read the current row first; the scoped lookup doubles as the
	// ownership check.
	current, err := s.queries.GetEntryByIDAndOwner(ctx, entryID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, logutil.LogAndWrapErr(s.log, "failed to update pokedex entry",
			models.NewDatabaseError(err))
	}

	arg := sqliteDB.UpdateEntryParams{
		Nickname:    current.Nickname,
		Notes:       current.Notes,
		IsCaptured:  current.IsCaptured,
		Favorite:    current.Favorite,
		CaptureDate: current.CaptureDate,
		ID:          entryID,
		OwnerID:     ownerID,
	}
	if changes.Nickname != nil {
		arg.Nickname = sql.NullString{String: *changes.Nickname, Valid: true}
	}
	if changes.Notes != nil {
		arg.Notes = sql.NullString{String: *changes.Notes, Valid: true}
	}
	if changes.IsCaptured != nil {
		arg.IsCaptured = *changes.IsCaptured
	}
	if changes.Favorite != nil {
		arg.Favorite = *changes.Favorite
	}
	if changes.CaptureDate != nil {
		arg.CaptureDate = sql.NullInt64{Int64: changes.CaptureDate.Unix(), Valid: true}
	}
	// Newly captured entries get a capture date if the caller didn't
	// provide one.
	if arg.IsCaptured && !arg.CaptureDate.Valid {
		arg.CaptureDate = sql.NullInt64{Int64: time.Now().Unix(), Valid: true}
	}

	sqlEntry, err := s.queries.UpdateEntry(ctx, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, logutil.LogAndWrapErr(s.log, "failed to update pokedex entry",
			models.NewDatabaseError(err))
	}

	entry := sqlEntry.ToEntryModel()
	return &entry, nil
}

func (s *sqlitePokedexStore) Delete(ctx context.Context, ownerID, entryID int64) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "Delete", "entry_id", entryID)()

	affected, err := s.queries.DeleteEntryByIDAndOwner(ctx, entryID, ownerID)
	if err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to delete pokedex entry",
			models.NewDatabaseError(err))
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
