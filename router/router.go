// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/election-portal/auth"
	"github.com/danielhkuo/election-portal/captcha"
	"github.com/danielhkuo/election-portal/cliparse"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/handlers"
	"github.com/danielhkuo/election-portal/metrics"
	"github.com/danielhkuo/election-portal/middleware"
	"github.com/danielhkuo/election-portal/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (http.Handler, error) {
	mux := http.NewServeMux()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	sessions := auth.NewResolver(tokens, cfg.SecureCookies)

	st := store.New(db)
	engine := election.NewEngine(st, election.Normalizer{
		FoldCase:  cfg.PositionFoldCase,
		TrimSpace: cfg.PositionTrimSpace,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, engine, tokens, sessions, captcha.New(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL))
	votingHandler := handlers.NewVotingHandler(engine, sessions)
	resultsHandler := handlers.NewResultsHandler(engine, sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/check", middleware.WithLogging(authHandler.Check))

	// Voting (requires a session)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(votingHandler.Candidates))
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /votes", middleware.WithLogging(votingHandler.MyVotes))

	// Results (admin session)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("election-portal API v1"))
	})

	return middleware.Recover(middleware.CORS(cfg.AllowedOrigins)(mux)), nil
}
