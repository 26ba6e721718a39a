// Package router wires the HTTP surface: route registration, middleware
// ordering, bearer authentication and per-IP rate limiting.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/Jose-https1/pokedex-api/api"
	"github.com/Jose-https1/pokedex-api/internal/authstore"
	"github.com/Jose-https1/pokedex-api/internal/pokeapi"
	"github.com/Jose-https1/pokedex-api/internal/pokedexstore"
	"github.com/Jose-https1/pokedex-api/internal/ratelimit"
	"github.com/Jose-https1/pokedex-api/internal/teamstore"
	"github.com/Jose-https1/pokedex-api/internal/tokenstore"
)

// Stores bundles the datastores and the upstream gateway the handlers use.
type Stores struct {
	Auth    authstore.Store
	Token   tokenstore.Store
	Pokedex pokedexstore.Store
	Teams   teamstore.Store
	PokeAPI *pokeapi.Client
}

// Options tunes the router beyond its stores.
type Options struct {
	// AllowedOrigins is the CORS allow-list. An empty list denies every
	// cross-origin request.
	AllowedOrigins []string

	// Quotas override the default per-group rate quotas. Zero-value quotas
	// fall back to the defaults. Mainly for tests.
	RegisterQuota ratelimit.Quota
	LoginQuota    ratelimit.Quota
	PokedexQuota  ratelimit.Quota
	SearchQuota   ratelimit.Quota
}

func orDefault(q, def ratelimit.Quota) ratelimit.Quota {
	if q.Requests == 0 {
		return def
	}
	return q
}

// New assembles the chi router with the full middleware stack. Order
// matters: request identity and logging first, then CORS, then rate
// limiting, then (per-route) bearer authentication.
func New(logger *slog.Logger, stores Stores, opts Options) http.Handler {
	h := newHandler(logger, stores)

	registerLimit := ratelimit.New(orDefault(opts.RegisterQuota, ratelimit.RegisterQuota))
	loginLimit := ratelimit.New(orDefault(opts.LoginQuota, ratelimit.LoginQuota))
	pokedexLimit := ratelimit.New(orDefault(opts.PokedexQuota, ratelimit.PokedexQuota))
	searchLimit := ratelimit.New(orDefault(opts.SearchQuota, ratelimit.SearchQuota))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	corsOpts := cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	if len(opts.AllowedOrigins) == 0 {
		// rs/cors treats an empty origin list as allow-all. An unset
		// allow-list must deny cross-origin callers instead.
		corsOpts.AllowOriginFunc = func(string) bool { return false }
	}
	r.Use(cors.New(corsOpts).Handler)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		api.ReturnError(w, logger, func() (int, api.ErrorResponse) { return api.NotFound("") })
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		api.ReturnError(w, logger, api.MethodNotAllowed)
	})

	r.Get("/health", h.handleHealth())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(h.rateLimit(registerLimit)).Post("/register", h.handleRegister())
			r.With(h.rateLimit(loginLimit)).Post("/login", h.handleLogin())
		})

		r.Route("/pokedex", func(r chi.Router) {
			r.Use(h.rateLimit(pokedexLimit))
			r.Use(h.requireAuth)
			r.Post("/", h.handleCreateEntry())
			r.Get("/", h.handleListEntries())
			r.Get("/stats", h.handleStats())
			r.Get("/export", h.handleExport())
			r.Get("/{entryID}", h.handleGetEntry())
			r.Put("/{entryID}", h.handleUpdateEntry())
			r.Patch("/{entryID}", h.handleUpdateEntry())
			r.Delete("/{entryID}", h.handleDeleteEntry())
		})

		r.Route("/teams", func(r chi.Router) {
			r.Use(h.rateLimit(pokedexLimit))
			r.Use(h.requireAuth)
			r.Post("/", h.handleCreateTeam())
			r.Get("/", h.handleListTeams())
			r.Get("/{teamID}", h.handleGetTeam())
			r.Put("/{teamID}", h.handleUpdateTeam())
			r.Patch("/{teamID}", h.handleUpdateTeam())
			r.Delete("/{teamID}", h.handleDeleteTeam())
		})

		r.Route("/pokemon", func(r chi.Router) {
			r.Use(h.rateLimit(searchLimit))
			r.Use(h.requireAuth)
			r.Get("/search", h.handleSearchPokemon())
			r.Get("/{idOrName}", h.handleGetPokemon())
		})
	})

	return r
}
