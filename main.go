package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/election-portal/cliparse"
	"github.com/danielhkuo/election-portal/db"
	"github.com/danielhkuo/election-portal/election"
	"github.com/danielhkuo/election-portal/metrics"
	"github.com/danielhkuo/election-portal/router"
	"github.com/danielhkuo/election-portal/store"
)

func main() {
	var err error

	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Load voters and candidates
	if cfg.SeedFile != "" {
		if err := importSeed(dbConn, cfg); err != nil {
			slog.Error("seed import failed", "error", err, "file", cfg.SeedFile)
			os.Exit(1)
		}
	}

	metrics.InitPrometheusMetrics()

	// Create router
	handler, err := router.NewRouter(dbConn, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		// Wait for Ctrl-C signal, then let in-flight votes finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return
	}
	<-shutdownDone
	slog.Info("Server closed")
}

// importSeed loads the election setup file, keyed with the same position
// normalization the engine will use.
func importSeed(conn *sql.DB, cfg cliparse.Config) error {
	f, err := os.Open(cfg.SeedFile)
	if err != nil {
		return err
	}
	defer f.Close()

	seed, err := store.ReadSeed(f)
	if err != nil {
		return err
	}

	norm := election.Normalizer{FoldCase: cfg.PositionFoldCase, TrimSpace: cfg.PositionTrimSpace}
	return store.New(conn).Import(context.Background(), seed, norm.Key)
}
