// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/election-portal/auth"
	"github.com/danielhkuo/election-portal/captcha"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/metrics"
	"github.com/danielhkuo/election-portal/middleware"
	"github.com/danielhkuo/election-portal/models"
	"github.com/danielhkuo/election-portal/store"
)

// VoterFinder looks up a registered voter by login credentials.
type VoterFinder interface {
	VoterByCredentials(ctx context.Context, email, regNumber string) (models.Voter, error)
}

type AuthHandler struct {
	voters   VoterFinder
	engine   *election.Engine
	tokens   *auth.TokenService
	sessions *auth.Resolver
	captcha  captcha.Verifier
}

func NewAuthHandler(voters VoterFinder, engine *election.Engine, tokens *auth.TokenService, sessions *auth.Resolver, verifier captcha.Verifier) *AuthHandler {
	return &AuthHandler{
		voters:   voters,
		engine:   engine,
		tokens:   tokens,
		sessions: sessions,
		captcha:  verifier,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.RegNumber) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindValidation, "Email and registration number are required")
		return
	}

	clientIP := middleware.GetClientIP(r)

	if err := h.captcha.Verify(r.Context(), req.RecaptchaToken, clientIP); err != nil {
		if errors.Is(err, captcha.ErrRejected) {
			metrics.Ballot.LoginsTotal.With("result", "captcha_rejected").Add(1)
			middleware.ErrorResponse(w, http.StatusBadRequest, models.KindValidation, "Invalid reCAPTCHA")
			return
		}
		slog.Error("captcha verification failed", "error", err, "ip", clientIP)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.KindInternal, "Server error")
		return
	}

	voter, err := h.voters.VoterByCredentials(r.Context(), req.Email, req.RegNumber)
	if errors.Is(err, store.ErrNotFound) {
		metrics.Ballot.LoginsTotal.With("result", "invalid_credentials").Add(1)
		slog.Info("login rejected", "ip", clientIP)
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to look up voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.KindStorage, "Server error")
		return
	}

	token, err := h.tokens.Issue(models.Identity{
		VoterID:   voter.ID,
		Email:     voter.Email,
		RegNumber: voter.RegNumber,
		Level:     voter.Level,
	})
	if err != nil {
		slog.Error("failed to issue session token", "error", err, "voter_id", voter.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.KindInternal, "Server error")
		return
	}

	h.sessions.SetCookie(w, token)
	metrics.Ballot.LoginsTotal.With("result", "success").Add(1)
	slog.Info("voter logged in", "voter_id", voter.ID, "ip", clientIP)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Success: true})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Success: true})
}

// Check handles GET /auth/check
// Completion is recomputed from the ledger, so the answer survives a stale flag
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.Resolve(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.KindUnauthorized, "Unauthorized")
		return
	}

	completed, err := h.engine.Completion(r.Context(), identity.VoterID)
	if err != nil {
		engineError(w, err, "voter_id", identity.VoterID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthCheckResponse{
		Authenticated:      true,
		HasCompletedVoting: completed,
	})
}
