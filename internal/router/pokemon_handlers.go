package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/pokeapi"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type searchResponse struct {
	Count   int                `json:"count"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	Results []*pokeapi.Pokemon `json:"results"`
}

func (h *Handler) handleSearchPokemon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", defaultSearchLimit)
		if limit == 0 || limit > maxSearchLimit {
			limit = defaultSearchLimit
		}
		offset := queryInt(r, "offset", 0)

		// a name lookup is just a single-species search
		if name := r.URL.Query().Get("name"); name != "" {
			species, err := h.pokeapi.GetPokemon(r.Context(), name)
			if err != nil {
				h.respondGatewayError(w, err)
				return
			}
			api.RespondJSONAndLog(w, h.log, http.StatusOK, searchResponse{
				Count:   1,
				Limit:   limit,
				Results: []*pokeapi.Pokemon{species},
			})
			return
		}

		count, results, err := h.pokeapi.List(r.Context(), limit, offset)
		if err != nil {
			h.respondGatewayError(w, err)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, searchResponse{
			Count:   count,
			Limit:   limit,
			Offset:  offset,
			Results: results,
		})
	}
}

func (h *Handler) handleGetPokemon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		species, err := h.pokeapi.GetPokemon(r.Context(), chi.URLParam(r, "idOrName"))
		if err != nil {
			h.respondGatewayError(w, err)
			return
		}
		api.RespondJSONAndLog(w, h.log, http.StatusOK, species)
	}
}
