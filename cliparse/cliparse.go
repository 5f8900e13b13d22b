package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	JWTSecret     string        `env:"JWT_SECRET_KEY"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SECURE_COOKIES"`

	RecaptchaSecret    string `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Position names are compared through these before grouping
	PositionFoldCase  bool `env:"POSITION_FOLD_CASE" envDefault:"true"`
	PositionTrimSpace bool `env:"POSITION_TRIM_SPACE" envDefault:"true"`

	SeedFile string `env:"SEED_FILE"`
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("election-portal", flag.ContinueOnError)

	// Env values become the flag defaults so an explicit flag always wins
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Token signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "Session token lifetime")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON file with voters and candidates to load at startup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))
	switch cfg.DatabaseType {
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:election.db"
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token TTL must be positive")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET_KEY required")
	}

	return cfg, nil
}
