package router

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/ratelimit"
	"github.com/Jose-https1/pokedex-api/internal/tokenstore"
	"github.com/Jose-https1/pokedex-api/pkg/models"
)

type contextKey string

const userContextKey contextKey = "user"

// userFromContext returns the authenticated user placed there by
// requireAuth. The bool is false on routes that never went through it.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// requestLogger logs one line per request at info level, with timing.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"remote_ip", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start),
			)
		})
	}
}

// clientIP strips the port from the request's remote address. RealIP
// middleware has already substituted forwarded-for headers where present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimit rejects requests over the limiter's quota with 429 before any
// authentication work happens.
func (h *Handler) rateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				h.log.Debug("rate limit exceeded", "remote_ip", r.RemoteAddr, "path", r.URL.Path)
				api.ReturnError(w, h.log, api.TooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth validates the bearer token and resolves its subject to an
// account, storing the user in the request context. Expired tokens get a
// distinct message from malformed ones; a token whose subject no longer
// exists is treated as invalid.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := extractBearerToken(r)
		if err != nil {
			api.ReturnError(w, h.log, api.UnauthorizedMissingToken)
			return
		}

		payload, err := h.token.Validate(tokenStr)
		if err != nil {
			if errors.Is(err, tokenstore.ErrTokenExpired) {
				api.ReturnError(w, h.log, api.UnauthorizedExpiredToken)
				return
			}
			api.ReturnError(w, h.log, api.UnauthorizedInvalidToken)
			return
		}

		user, err := h.auth.GetUserByUsername(r.Context(), payload.Subject)
		if err != nil || !user.IsActive {
			h.log.Debug("token subject not resolvable", "sub", payload.Subject)
			api.ReturnError(w, h.log, api.UnauthorizedInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("no authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty token")
	}

	return token, nil
}
