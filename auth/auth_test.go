// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/election-portal/models"
)

var testIdentity = models.Identity{
	VoterID:   "voter-123",
	Email:     "ada@example.com",
	RegNumber: "SPE-001",
	Level:     models.LevelVoter,
}

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService("test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return s
}

func TestNewTokenService(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err != ErrMissingSecret {
		t.Errorf("NewTokenService(\"\") error = %v, want %v", err, ErrMissingSecret)
	}

	s, err := NewTokenService("secret", 0)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	if s.TTL() != 24*time.Hour {
		t.Errorf("TTL() = %s, want 24h default", s.TTL())
	}
}

func TestIssueAndVerify(t *testing.T) {
	s := newTestService(t)

	token, err := s.Issue(testIdentity)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("Issue() token is not a JWT: %s", token)
	}

	got, ok := s.Verify(token)
	if !ok {
		t.Fatal("Verify() rejected a fresh token")
	}
	if got != testIdentity {
		t.Errorf("Verify() = %+v, want %+v", got, testIdentity)
	}
}

func TestIssueRequiresVoterID(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Issue(models.Identity{Email: "x@example.com"}); err == nil {
		t.Error("Issue() should reject an identity without voter id")
	}
}

func TestVerifyRejects(t *testing.T) {
	s := newTestService(t)
	valid, _ := s.Issue(testIdentity)

	other, _ := NewTokenService("other-secret", time.Hour)
	foreign, _ := other.Issue(testIdentity)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "voter-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "voter-123",
	}).SignedString([]byte("test-secret"))

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered", valid[:len(valid)-2] + "xx"},
		{"wrong secret", foreign},
		{"alg none", noneToken},
		{"missing exp", noExpiry},
		{"missing subject", noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := s.Verify(tt.token); ok {
				t.Errorf("Verify(%q) accepted an invalid token", tt.name)
			}
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	s := newTestService(t)
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issuedAt }

	token, err := s.Issue(testIdentity)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	s.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	if _, ok := s.Verify(token); !ok {
		t.Error("Verify() rejected a token inside its 24h window")
	}

	s.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Second) }
	if _, ok := s.Verify(token); ok {
		t.Error("Verify() accepted an expired token")
	}
}

func TestResolve(t *testing.T) {
	s := newTestService(t)
	r := NewResolver(s, false)
	token, _ := s.Issue(testIdentity)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		wantOK bool
	}{
		{"no credentials", func(req *http.Request) {}, false},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		}, true},
		{"bearer header", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		}, true},
		{"lowercase bearer", func(req *http.Request) {
			req.Header.Set("Authorization", "bearer "+token)
		}, true},
		{"invalid cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
		}, false},
		{"basic auth", func(req *http.Request) {
			req.SetBasicAuth("ada", "pw")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/votes", nil)
			tt.setup(req)

			id, ok := r.Resolve(req)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && id.VoterID != testIdentity.VoterID {
				t.Errorf("Resolve() voter = %s, want %s", id.VoterID, testIdentity.VoterID)
			}
		})
	}
}

func TestSetAndClearCookie(t *testing.T) {
	s := newTestService(t)
	r := NewResolver(s, true)

	w := httptest.NewRecorder()
	r.SetCookie(w, "tok")
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok" {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Error("session cookie must be HttpOnly, Secure, and SameSite=Strict")
	}
	if c.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Errorf("MaxAge = %d, want 24h", c.MaxAge)
	}

	w = httptest.NewRecorder()
	r.ClearCookie(w)
	c = w.Result().Cookies()[0]
	if c.MaxAge >= 0 {
		t.Errorf("ClearCookie MaxAge = %d, want negative", c.MaxAge)
	}
}
