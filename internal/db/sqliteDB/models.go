package sqliteDB

import "database/sql"

// Raw row types mirror the sqlite schema. Timestamps are stored as unix
// seconds; conversions to portable models live in conversions.go.

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    int64
	IsActive     bool
}

type PokedexEntry struct {
	ID            int64
	OwnerID       int64
	PokemonID     int64
	PokemonName   string
	PokemonSprite string
	Nickname      sql.NullString
	Notes         sql.NullString
	IsCaptured    bool
	Favorite      bool
	CaptureDate   sql.NullInt64
	CreatedAt     int64
}

type Team struct {
	ID          int64
	TrainerID   int64
	Name        string
	Description sql.NullString
	CreatedAt   int64
}

// TeamMemberRow is the join of team_members with pokedex_entries used when
// loading a team.
type TeamMemberRow struct {
	ID             int64
	Position       int64
	PokedexEntryID int64
	PokemonID      int64
	PokemonName    string
}
