package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// RespondJSONAndLog is a convenience wrapper around RespondJSON that also logs any encoding errors.
// It accepts a logger, writes a standardized JSON response, and logs at debug level if encoding fails.
func RespondJSONAndLog(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if err := RespondJSON(w, status, payload); err != nil {
		logger.Debug("failed to respond with JSON", "err", err)
	}
}

// RespondJSON writes a standardized JSON response.
// It sets the appropriate HTTP status code and Content-Type header,
// and encodes the provided payload into the response body.
//
// Returns an error only if JSON encoding fails. In most cases, this happens
// if the response writer is closed or the payload is not serializable.
func RespondJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(payload)
}

// RegisterRequest defines model for RegisterRequest.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned from a successful login. ExpiresIn is the
// token lifetime in seconds.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

type UserResponse struct {
	User models.User `json:"user"`
}

// CreateEntryRequest defines the body for adding a Pokemon to the pokedex.
// The species name and sprite are resolved from the external data service,
// never taken from the client.
type CreateEntryRequest struct {
	PokemonID  int64   `json:"pokemonId"`
	Nickname   *string `json:"nickname,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsCaptured bool    `json:"isCaptured"`
	Favorite   bool    `json:"favorite"`
}

// UpdateEntryRequest carries a partial update; absent fields are untouched.
type UpdateEntryRequest struct {
	Nickname    *string    `json:"nickname,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	IsCaptured  *bool      `json:"isCaptured,omitempty"`
	Favorite    *bool      `json:"favorite,omitempty"`
	CaptureDate *time.Time `json:"captureDate,omitempty"`
}

type EntryResponse struct {
	Entry models.PokedexEntry `json:"entry"`
}

type ListEntriesResponse struct {
	Entries []models.PokedexEntry `json:"entries"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

type StatsResponse struct {
	Stats models.PokedexStats `json:"stats"`
}

// CreateTeamRequest defines the body for assembling a team from owned
// pokedex entries. Members are entry IDs in slot order.
type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Members     []int64 `json:"members"`
}

// UpdateTeamRequest is a partial team update; a nil Members keeps the
// current lineup.
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Members     []int64 `json:"members,omitempty"`
}

type TeamResponse struct {
	Team models.Team `json:"team"`
}

type ListTeamsResponse struct {
	Teams []models.Team `json:"teams"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
