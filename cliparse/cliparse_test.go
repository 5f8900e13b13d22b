// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("expected 2 allowed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "file:election.db" {
		t.Errorf("unexpected database defaults: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token TTL, got %s", cfg.TokenTTL)
	}
	if !cfg.PositionFoldCase || !cfg.PositionTrimSpace {
		t.Error("position normalization should default to on")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET_KEY", "env-secret")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-jwt-secret", "cli-secret"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "cli-secret" {
		t.Errorf("CLI should override env: expected cli-secret, got %s", cfg.JWTSecret)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing secret", nil, nil},
		{"postgres without url", map[string]string{"JWT_SECRET_KEY": "s", "DATABASE_TYPE": "postgres"}, nil},
		{"unknown database", map[string]string{"JWT_SECRET_KEY": "s"}, []string{"-t", "mysql"}},
		{"bad port env", map[string]string{"JWT_SECRET_KEY": "s", "PORT": "abc"}, nil},
		{"negative ttl", map[string]string{"JWT_SECRET_KEY": "s"}, []string{"-token-ttl", "-1h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
