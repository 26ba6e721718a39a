package router

import (
	"errors"
	"net/http"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/teamstore"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func (h *Handler) handleCreateTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}

		var req api.CreateTeamRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" {
			api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
				return api.BadRequestValidation("team name must not be empty")
			})
			return
		}

		team, err := h.teams.Create(r.Context(), teamstore.CreateTeamParams{
			TrainerID:       user.ID,
			Name:            req.Name,
			Description:     req.Description,
			PokedexEntryIDs: req.Members,
		})
		if err != nil {
			h.respondTeamError(w, err)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusCreated, api.TeamResponse{Team: *team})
	}
}

func (h *Handler) handleListTeams() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}

		teams, err := h.teams.List(r.Context(), user.ID)
		if err != nil {
			h.log.Error("listing teams", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.ListTeamsResponse{Teams: teams})
	}
}

func (h *Handler) handleGetTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}
		teamID, ok := h.pathID(w, r, "teamID")
		if !ok {
			return
		}

		team, err := h.teams.Get(r.Context(), user.ID, teamID)
		if err != nil {
			h.respondTeamError(w, err)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.TeamResponse{Team: *team})
	}
}

func (h *Handler) handleUpdateTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}
		teamID, ok := h.pathID(w, r, "teamID")
		if !ok {
			return
		}

		var req api.UpdateTeamRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		team, err := h.teams.Update(r.Context(), user.ID, teamID, teamstore.UpdateTeamParams{
			Name:            req.Name,
			Description:     req.Description,
			PokedexEntryIDs: req.Members,
		})
		if err != nil {
			h.respondTeamError(w, err)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.TeamResponse{Team: *team})
	}
}

func (h *Handler) handleDeleteTeam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.currentUser(w, r)
		if !ok {
			return
		}
		teamID, ok := h.pathID(w, r, "teamID")
		if !ok {
			return
		}

		if err := h.teams.Delete(r.Context(), user.ID, teamID); err != nil {
			h.respondTeamError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// respondTeamError maps team store failures. Unknown and foreign teams
// share the same 404; lineup violations surface as validation errors.
func (h *Handler) respondTeamError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, teamstore.ErrTeamNotFound):
		api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
			return api.NotFound("team not found")
		})
	case errors.As(err, &validationErr):
		details := validationErr.Error()
		api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
			return api.BadRequestValidation(details)
		})
	default:
		h.log.Error("team operation failed", "err", err)
		api.ReturnError(w, h.log, api.InternalServerError)
	}
}
