// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/election-portal/models"
)

// CookieName is the credential store for the session token
const CookieName = "auth-token"

var ErrMissingSecret = errors.New("token secret is required")

type sessionClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	RegNumber string `json:"reg_number"`
	Level     int    `json:"level"`
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is how long issued tokens stay valid
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs the identity into a token valid for the service TTL
func (s *TokenService) Issue(id models.Identity) (string, error) {
	if id.VoterID == "" {
		return "", errors.New("voter id is required")
	}

	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.VoterID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email:     id.Email,
		RegNumber: id.RegNumber,
		Level:     id.Level,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify returns the identity only for a correctly signed, unexpired token
func (s *TokenService) Verify(token string) (models.Identity, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, false
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return models.Identity{}, false
	}

	return models.Identity{
		VoterID:   claims.Subject,
		Email:     claims.Email,
		RegNumber: claims.RegNumber,
		Level:     claims.Level,
	}, true
}

// Resolver turns an inbound request into a verified identity
type Resolver struct {
	tokens       *TokenService
	secureCookie bool
}

func NewResolver(tokens *TokenService, secureCookie bool) *Resolver {
	return &Resolver{tokens: tokens, secureCookie: secureCookie}
}

// Resolve reads the token from the auth-token cookie, falling back to an
// Authorization: Bearer header for API clients
func (r *Resolver) Resolve(req *http.Request) (models.Identity, bool) {
	token := ""
	if c, err := req.Cookie(CookieName); err == nil {
		token = c.Value
	}
	if token == "" {
		if h := req.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			token = h[7:]
		}
	}
	return r.tokens.Verify(token)
}

// SetCookie writes the session token to the response
func (r *Resolver) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(r.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie
func (r *Resolver) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
