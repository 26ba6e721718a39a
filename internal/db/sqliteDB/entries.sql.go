package sqliteDB

import (
	"context"
	"database/sql"
	"strings"
)

const entryColumns = `id, owner_id, pokemon_id, pokemon_name, pokemon_sprite, nickname, notes, is_captured, favorite, capture_date, created_at`

const createEntry = `
INSERT INTO pokedex_entries (owner_id, pokemon_id, pokemon_name, pokemon_sprite, nickname, notes, is_captured, favorite, capture_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + entryColumns

type CreateEntryParams struct {
	OwnerID       int64
	PokemonID     int64
	PokemonName   string
	PokemonSprite string
	Nickname      sql.NullString
	Notes         sql.NullString
	IsCaptured    bool
	Favorite      bool
	CaptureDate   sql.NullInt64
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (PokedexEntry, error) {
	row := q.db.QueryRowContext(ctx, createEntry,
		arg.OwnerID, arg.PokemonID, arg.PokemonName, arg.PokemonSprite,
		arg.Nickname, arg.Notes, arg.IsCaptured, arg.Favorite, arg.CaptureDate,
	)
	return scanEntry(row)
}

const getEntryByIDAndOwner = `
SELECT ` + entryColumns + `
FROM pokedex_entries
WHERE id = ? AND owner_id = ?
`

// GetEntryByIDAndOwner returns sql.ErrNoRows both for a missing entry and
// for an entry owned by a different user. Callers must not distinguish.
func (q *Queries) GetEntryByIDAndOwner(ctx context.Context, id, ownerID int64) (PokedexEntry, error) {
	row := q.db.QueryRowContext(ctx, getEntryByIDAndOwner, id, ownerID)
	return scanEntry(row)
}

// ListEntriesParams controls filtering and ordering of ListEntriesByOwner.
// SortColumn must be one of the whitelisted columns; anything else falls
// back to insertion order.
type ListEntriesParams struct {
	OwnerID    int64
	Captured   sql.NullBool
	Favorite   sql.NullBool
	SortColumn string
	Descending bool
	Limit      int64
	Offset     int64
}

var listSortColumns = map[string]bool{
	"pokemon_id":   true,
	"pokemon_name": true,
	"capture_date": true,
}

func (q *Queries) ListEntriesByOwner(ctx context.Context, arg ListEntriesParams) ([]PokedexEntry, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + entryColumns + " FROM pokedex_entries WHERE owner_id = ?")
	args := []any{arg.OwnerID}

	if arg.Captured.Valid {
		sb.WriteString(" AND is_captured = ?")
		args = append(args, arg.Captured.Bool)
	}
	if arg.Favorite.Valid {
		sb.WriteString(" AND favorite = ?")
		args = append(args, arg.Favorite.Bool)
	}

	// Sort column is whitelisted above, never caller-supplied SQL.
	if listSortColumns[arg.SortColumn] {
		sb.WriteString(" ORDER BY " + arg.SortColumn)
		if arg.Descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
		sb.WriteString(", id ASC")
	} else {
		sb.WriteString(" ORDER BY id ASC")
	}

	if arg.Limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, arg.Limit, arg.Offset)
	}

	rows, err := q.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []PokedexEntry
	for rows.Next() {
		var e PokedexEntry
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.PokemonID, &e.PokemonName, &e.PokemonSprite,
			&e.Nickname, &e.Notes, &e.IsCaptured, &e.Favorite, &e.CaptureDate, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const updateEntry = `
UPDATE pokedex_entries
SET nickname = ?, notes = ?, is_captured = ?, favorite = ?, capture_date = ?
WHERE id = ? AND owner_id = ?
RETURNING ` + entryColumns

type UpdateEntryParams struct {
	Nickname    sql.NullString
	Notes       sql.NullString
	IsCaptured  bool
	Favorite    bool
	CaptureDate sql.NullInt64
	ID          int64
	OwnerID     int64
}

func (q *Queries) UpdateEntry(ctx context.Context, arg UpdateEntryParams) (PokedexEntry, error) {
	row := q.db.QueryRowContext(ctx, updateEntry,
		arg.Nickname, arg.Notes, arg.IsCaptured, arg.Favorite, arg.CaptureDate,
		arg.ID, arg.OwnerID,
	)
	return scanEntry(row)
}

const deleteEntryByIDAndOwner = `
DELETE FROM pokedex_entries WHERE id = ? AND owner_id = ?
`

// DeleteEntryByIDAndOwner reports the number of rows removed so callers can
// translate zero into a not-found result.
func (q *Queries) DeleteEntryByIDAndOwner(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEntryByIDAndOwner, id, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanEntry(row *sql.Row) (PokedexEntry, error) {
	var e PokedexEntry
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.PokemonID, &e.PokemonName, &e.PokemonSprite,
		&e.Nickname, &e.Notes, &e.IsCaptured, &e.Favorite, &e.CaptureDate, &e.CreatedAt,
	)
	return e, err
}
