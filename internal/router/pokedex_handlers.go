package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/export"
	"github.com/Jose-https1/pokedex-api/internal/pokeapi"
	"github.com/Jose-https1/pokedex-api/internal/pokedexstore"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func (h *Handler) handleCreateEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}

		var req api.CreateEntryRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}
		if req.PokemonID <= 0 {
			api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
				return api.BadRequestValidation("pokemonId must be a positive integer")
			})
			return
		}

		// resolve the species so the stored name and sprite always match
		// upstream data
		species, err := h.pokeapi.GetPokemon(r.Context(), fmt.Sprint(req.PokemonID))
		if err != nil {
			h.respondGatewayError(w, err)
			return
		}

		entry, err := h.pokedex.Create(r.Context(), models.CreateEntryParams{
			OwnerID:    user.ID,
			PokemonID:  species.ID,
			Name:       species.Name,
			Sprite:     species.Sprite,
			Nickname:   req.Nickname,
			Notes:      req.Notes,
			IsCaptured: req.IsCaptured,
			Favorite:   req.Favorite,
		})
		if err != nil {
			var conflictErr *models.ConflictError
			if errors.As(err, &conflictErr) {
				api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
					return api.ResourceConflict("species is already in your pokedex")
				})
				return
			}
			h.log.Error("creating pokedex entry", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusCreated, api.EntryResponse{Entry: *entry})
	}
}

func (h *Handler) handleListEntries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}

		params := models.ListEntriesParams{
			Captured: queryBoolPtr(r, "captured"),
			Favorite: queryBoolPtr(r, "favorite"),
			Sort:     r.URL.Query().Get("sort"),
			Order:    r.URL.Query().Get("order"),
			Limit:    queryInt(r, "limit", 0),
			Offset:   queryInt(r, "offset", 0),
		}

		entries, err := h.pokedex.List(r.Context(), user.ID, params)
		if err != nil {
			h.log.Error("listing pokedex entries", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.ListEntriesResponse{
			Entries: entries,
			Total:   len(entries),
			Limit:   params.Limit,
			Offset:  params.Offset,
		})
	}
}

func (h *Handler) handleGetEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}
		entryID, ok := h.pathID(w, r, "entryID")
		if !ok {
			return
		}

		entry, err := h.pokedex.Get(r.Context(), user.ID, entryID)
		if err != nil {
			h.respondEntryError(w, err)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.EntryResponse{Entry: *entry})
	}
}

func (h *Handler) handleUpdateEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}
		entryID, ok := h.pathID(w, r, "entryID")
		if !ok {
			return
		}

		var req api.UpdateEntryRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		entry, err := h.pokedex.Update(r.Context(), user.ID, entryID, models.UpdateEntryParams{
			Nickname:    req.Nickname,
			Notes:       req.Notes,
			IsCaptured:  req.IsCaptured,
			Favorite:    req.Favorite,
			CaptureDate: req.CaptureDate,
		})
		if err != nil {
			h.respondEntryError(w, err)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.EntryResponse{Entry: *entry})
	}
}

func (h *Handler) handleDeleteEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}
		entryID, ok := h.pathID(w, r, "entryID")
		if !ok {
			return
		}

		if err := h.pokedex.Delete(r.Context(), user.ID, entryID); err != nil {
			h.respondEntryError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}

		entries, err := h.pokedex.List(r.Context(), user.ID, models.ListEntriesParams{})
		if err != nil {
			h.log.Error("aggregating pokedex stats", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		stats := pokedexstore.ComputeStats(entries)
		stats.MostCommonType = h.mostCommonType(r.Context(), entries)

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.StatsResponse{Stats: *stats})
	}
}

// mostCommonType tallies species types across the collection via the
// gateway cache. Upstream trouble degrades to nil rather than failing the
// whole stats request.
func (h *Handler) mostCommonType(ctx context.Context, entries []models.PokedexEntry) *string {
	counts := make(map[string]int)
	for _, entry := range entries {
		species, err := h.pokeapi.GetPokemon(ctx, fmt.Sprint(entry.PokemonID))
		if err != nil {
			h.log.Debug("skipping species in type tally", "pokemon_id", entry.PokemonID, "err", err)
			continue
		}
		for _, t := range species.Types {
			counts[t]++
		}
	}

	var best string
	var bestCount int
	for t, n := range counts {
		if n > bestCount || (n == bestCount && t < best) {
			best, bestCount = t, n
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &best
}

func (h *Handler) handleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}

		entries, err := h.pokedex.List(r.Context(), user.ID, models.ListEntriesParams{})
		if err != nil {
			h.log.Error("listing entries for export", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		doc, err := export.RenderPokedex(user.Username, entries)
		if err != nil {
			h.log.Error("rendering pokedex export", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(user.Username)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc); err != nil {
			h.log.Debug("writing pdf response", "err", err)
		}
	}
}

// respondEntryError maps store errors for single-entry operations. A
// missing entry and another user's entry both produce the same 404.
func (h *Handler) respondEntryError(w http.ResponseWriter, err error) {
	if errors.Is(err, pokedexstore.ErrEntryNotFound) {
		api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
			return api.NotFound("pokedex entry not found")
		})
		return
	}
	h.log.Error("pokedex entry operation failed", "err", err)
	api.ReturnError(w, h.log, api.InternalServerError)
}

// respondGatewayError maps upstream gateway errors onto API responses.
func (h *Handler) respondGatewayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
			return api.NotFound("no such pokemon species")
		})
	case errors.Is(err, pokeapi.ErrUpstreamUnavailable):
		api.ReturnError(w, h.log, api.UpstreamUnavailable)
	default:
		h.log.Error("gateway request failed", "err", err)
		api.ReturnError(w, h.log, api.InternalServerError)
	}
}
