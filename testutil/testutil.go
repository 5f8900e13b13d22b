// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/election-portal/auth"
	"github.com/danielhkuo/election-portal/cliparse"
	"github.com/danielhkuo/election-portal/db"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/models"
)

// SetupTestDB creates a fresh file-backed SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = "file:" + filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseType:      "sqlite",
		DatabaseURL:       "file::memory:",
		JWTSecret:         "test-jwt-secret",
		TokenTTL:          24 * time.Hour,
		PositionFoldCase:  true,
		PositionTrimSpace: true,
	}
}

// CreateTestVoter registers a voter and returns it
func CreateTestVoter(t *testing.T, conn *sql.DB, regNumber string, level int) models.Voter {
	t.Helper()

	v := models.Voter{
		ID:        uuid.NewString(),
		Email:     regNumber + "@example.com",
		RegNumber: regNumber,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}
	_, err := conn.Exec(`
		INSERT INTO voter (id, email, reg_number, level, has_voted, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`, v.ID, v.Email, v.RegNumber, v.Level, v.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return v
}

// AddTestCandidate adds a candidate at the end of the catalog and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, fullName, position string) string {
	t.Helper()

	var next int
	if err := conn.QueryRow(`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM candidate`).Scan(&next); err != nil {
		t.Fatalf("Failed to read sort order: %v", err)
	}

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, full_name, position, position_key, bio, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, fullName, position, election.DefaultNormalizer.Key(position), "Bio of "+fullName, next)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CountVotes returns the number of ledger rows for the voter and position key
func CountVotes(t *testing.T, conn *sql.DB, voterID, positionKey string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE voter_id = $1 AND position_key = $2
	`, voterID, positionKey).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// Identity returns the session identity for a test voter
func Identity(v models.Voter) models.Identity {
	return models.Identity{
		VoterID:   v.ID,
		Email:     v.Email,
		RegNumber: v.RegNumber,
		Level:     v.Level,
	}
}

// TestToken issues a session token for a test voter
func TestToken(t *testing.T, cfg cliparse.Config, v models.Voter) string {
	t.Helper()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}
	token, err := tokens.Issue(Identity(v))
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithSession attaches a session cookie to the request
func WithSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
