package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Jose-https1/pokedex-api/database"
	"github.com/Jose-https1/pokedex-api/internal/authstore"
	"github.com/Jose-https1/pokedex-api/internal/config"
	"github.com/Jose-https1/pokedex-api/internal/pokeapi"
	"github.com/Jose-https1/pokedex-api/internal/pokedexstore"
	"github.com/Jose-https1/pokedex-api/internal/router"
	"github.com/Jose-https1/pokedex-api/internal/teamstore"
	"github.com/Jose-https1/pokedex-api/internal/tokenstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	db, err := sql.Open("sqlite3", cfg.DatabaseURL)
	if err != nil {
		logger.Error("opening database", "path", cfg.DatabaseURL, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("database unreachable", "path", cfg.DatabaseURL, "err", err)
		os.Exit(1)
	}

	if err := database.RunSqliteMigrations(db); err != nil {
		logger.Error("running migrations", "err", err)
		os.Exit(1)
	}

	tokens, err := tokenstore.New(logger, cfg.SecretKey, cfg.TokenLifetime(), cfg.SigningAlgorithm)
	if err != nil {
		logger.Error("building token store", "err", err)
		os.Exit(1)
	}

	handler := router.New(logger, router.Stores{
		Auth:    authstore.NewWithSqliteStore(db, logger),
		Token:   tokens,
		Pokedex: pokedexstore.NewWithSqliteStore(db, logger),
		Teams:   teamstore.NewWithSqliteStore(db, logger),
		PokeAPI: pokeapi.NewClient(logger, cfg.PokeAPIBaseURL, cfg.PokeAPITimeout),
	}, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
		close(shutdownDone)
	}()

	logger.Info("listening", "addr", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "err", err)
		os.Exit(1)
	}
	<-shutdownDone
}
