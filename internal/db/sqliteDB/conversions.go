package sqliteDB

import (
	"database/sql"
	"time"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func (u *User) ToUserModel() models.User {
	return models.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    time.Unix(u.CreatedAt, 0).UTC(),
		IsActive:     u.IsActive,
	}
}

func (e *PokedexEntry) ToEntryModel() models.PokedexEntry {
	entry := models.PokedexEntry{
		ID:         e.ID,
		OwnerID:    e.OwnerID,
		PokemonID:  e.PokemonID,
		Name:       e.PokemonName,
		Sprite:     e.PokemonSprite,
		IsCaptured: e.IsCaptured,
		Favorite:   e.Favorite,
		CreatedAt:  time.Unix(e.CreatedAt, 0).UTC(),
	}
	if e.Nickname.Valid {
		entry.Nickname = &e.Nickname.String
	}
	if e.Notes.Valid {
		entry.Notes = &e.Notes.String
	}
	if e.CaptureDate.Valid {
		captured := time.Unix(e.CaptureDate.Int64, 0).UTC()
		entry.CaptureDate = &captured
	}
	return entry
}

func (t *Team) ToTeamModel() models.Team {
	team := models.Team{
		ID:        t.ID,
		TrainerID: t.TrainerID,
		Name:      t.Name,
		CreatedAt: time.Unix(t.CreatedAt, 0).UTC(),
	}
	if t.Description.Valid {
		team.Description = &t.Description.String
	}
	return team
}

func (m *TeamMemberRow) ToTeamMemberModel() models.TeamMember {
	return models.TeamMember{
		ID:             m.ID,
		Position:       int(m.Position),
		PokedexEntryID: m.PokedexEntryID,
		PokemonID:      m.PokemonID,
		PokemonName:    m.PokemonName,
	}
}

// Helpers for building nullable parameters from portable models.

func NullStringFromPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func NullBoolFromPtr(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
