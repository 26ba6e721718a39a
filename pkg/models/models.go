package models

import (
	"time"
)

// User represents a registered trainer account.
// PasswordHash is never serialized in API responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	IsActive     bool      `json:"isActive"`
}

// PokedexEntry is a single caught/seen Pokemon owned by exactly one user.
type PokedexEntry struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"ownerId"`
	PokemonID   int64      `json:"pokemonId"`
	Name        string     `json:"pokemonName"`
	Sprite      string     `json:"pokemonSprite"`
	Nickname    *string    `json:"nickname"`
	Notes       *string    `json:"notes"`
	IsCaptured  bool       `json:"isCaptured"`
	Favorite    bool       `json:"favorite"`
	CaptureDate *time.Time `json:"captureDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateEntryParams carries the caller-supplied fields for a new entry.
// Name and Sprite come from the external data gateway, not the client.
type CreateEntryParams struct {
	OwnerID    int64
	PokemonID  int64
	Name       string
	Sprite     string
	Nickname   *string
	Notes      *string
	IsCaptured bool
	Favorite   bool
}

// UpdateEntryParams holds partial updates; nil fields are left untouched.
type UpdateEntryParams struct {
	Nickname    *string
	Notes       *string
	IsCaptured  *bool
	Favorite    *bool
	CaptureDate *time.Time
}

// Sort columns accepted by ListEntriesParams.
const (
	SortByPokemonID   = "pokemon_id"
	SortByName        = "pokemon_name"
	SortByCaptureDate = "capture_date"
)

// ListEntriesParams filters and orders a user's collection. The zero value
// lists everything in insertion order.
type ListEntriesParams struct {
	Captured *bool
	Favorite *bool
	Sort     string // one of the SortBy constants, empty for insertion order
	Order    string // "asc" or "desc"
	Limit    int
	Offset   int
}

// Team is a battle team of up to MaxTeamSize members, owned by a trainer.
type Team struct {
	ID          int64        `json:"id"`
	TrainerID   int64        `json:"trainerId"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	Members     []TeamMember `json:"members"`
}

// TeamMember links a team slot to a pokedex entry of the same trainer.
type TeamMember struct {
	ID             int64  `json:"id"`
	Position       int    `json:"position"`
	PokedexEntryID int64  `json:"pokedexEntryId"`
	PokemonID      int64  `json:"pokemonId"`
	PokemonName    string `json:"pokemonName"`
}

// MaxTeamSize is the maximum number of members a team may hold.
const MaxTeamSize = 6

// PokedexStats aggregates a user's collection.
type PokedexStats struct {
	TotalPokemon         int     `json:"totalPokemon"`
	Captured             int     `json:"captured"`
	Favorites            int     `json:"favorites"`
	CompletionPercentage float64 `json:"completionPercentage"`
	MostCommonType       *string `json:"mostCommonType"`
	CaptureStreakDays    int     `json:"captureStreakDays"`
}
