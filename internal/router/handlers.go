package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/authstore"
	"github.com/Jose-https1/pokedex-api/internal/pokeapi"
	"github.com/Jose-https1/pokedex-api/internal/pokedexstore"
	"github.com/Jose-https1/pokedex-api/internal/teamstore"
	"github.com/Jose-https1/pokedex-api/internal/tokenstore"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

type Handler struct {
	auth    authstore.Store
	token   tokenstore.Store
	pokedex pokedexstore.Store
	teams   teamstore.Store
	pokeapi *pokeapi.Client
	log     *slog.Logger
}

func newHandler(logger *slog.Logger, stores Stores) *Handler {
	return &Handler{
		auth:    stores.Auth,
		token:   stores.Token,
		pokedex: stores.Pokedex,
		teams:   stores.Teams,
		pokeapi: stores.PokeAPI,
		log:     logger,
	}
}

func (h *Handler) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.auth.Ping(); err != nil {
			h.log.Error("health check failed", "err", err)
			api.RespondJSONAndLog(w, h.log, http.StatusServiceUnavailable, api.HealthResponse{Status: "degraded"})
			return
		}
		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// decodeJSON reads the request body into dst and writes the 400 response
// itself on failure. Returns false when the handler should stop.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.ReturnError(w, h.log, api.BadRequestInvalidJSON)
		return false
	}
	return true
}

// currentUser pulls the authenticated user out of the context. A miss means
// the route was registered without requireAuth, which is a programming
// error, so it answers 500.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := userFromContext(r.Context())
	if !ok {
		h.log.Error("handler expected authenticated user in context", "path", r.URL.Path)
		api.ReturnError(w, h.log, api.InternalServerError)
		return nil, false
	}
	return user, true
}

// pathID parses a numeric path parameter, answering 404 on garbage so that
// /pokedex/abc is indistinguishable from a missing record.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		api.ReturnError(w, h.log, func() (int, api.ErrorResponse) { return api.NotFound("") })
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// queryBoolPtr parses an optional boolean filter, nil when absent or
// unparseable.
func queryBoolPtr(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
