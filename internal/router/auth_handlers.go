package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/authstore"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

func (h *Handler) handleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.RegisterRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		user, err := h.auth.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			var validationErr *models.ValidationError
			var conflictErr *models.ConflictError
			switch {
			case errors.As(err, &validationErr):
				details := validationErr.Error()
				api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
					return api.BadRequestValidation(details)
				})
			case errors.As(err, &conflictErr):
				api.ReturnError(w, h.log, func() (int, api.ErrorResponse) {
					return api.ResourceConflict("username is already taken")
				})
			default:
				h.log.Error("registering account", "err", err)
				api.ReturnError(w, h.log, api.InternalServerError)
			}
			return
		}

		h.log.Info("account registered", "username", user.Username)
		api.RespondJSONAndLog(w, h.log, http.StatusCreated, api.UserResponse{User: *user})
	}
}

func (h *Handler) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}

		user, err := h.auth.Verify(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authstore.ErrInvalidCredentials) {
				api.ReturnError(w, h.log, api.UnauthorizedInvalidCredentials)
				return
			}
			h.log.Error("verifying credentials", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		token, expiresAt, err := h.token.Issue(user)
		if err != nil {
			h.log.Error("issuing token", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}

		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.TokenResponse{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: int64(time.Until(expiresAt).Round(time.Second).Seconds()),
		})
	}
}
