package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/gridline/grid"
	"github.com/JonMunkholm/gridline/internal/config"
	"github.com/JonMunkholm/gridline/internal/logging"
	"github.com/JonMunkholm/gridline/internal/web"
	"github.com/JonMunkholm/gridline/remote"
	"github.com/google/uuid"
)

// person is the row type the reference server exposes. When a database
// is configured the same shape is read from the configured table.
type person struct {
	ID       string    `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Age      int       `json:"age" db:"age"`
	City     string    `json:"city" db:"city"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

func personColumns() []grid.Column[person] {
	return []grid.Column[person]{
		{ID: "id", Header: "ID", Accessor: func(p person) any { return p.ID }, DisableFilter: true},
		{ID: "name", Header: "Name", Accessor: func(p person) any { return p.Name }},
		{ID: "age", Header: "Age", Accessor: func(p person) any { return p.Age }},
		{ID: "city", Header: "City", Accessor: func(p person) any { return p.City }},
		{ID: "joined_at", Header: "Joined", Accessor: func(p person) any { return p.JoinedAt }, DisableFilter: true},
	}
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database_configured", cfg.Database.URL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	var provider remote.Provider[person]
	if cfg.Database.URL != "" {
		pool, err := connectPool(ctx, cfg)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		provider, err = remote.NewPGProvider(pool, remote.PGConfig{
			Table:         cfg.Database.Table,
			Columns:       []string{"id", "name", "age", "city", "joined_at"},
			SearchColumns: []string{"name", "city"},
		}, pgx.RowToStructByName[person])
		if err != nil {
			slog.Error("failed to create database provider", "error", err)
			os.Exit(1)
		}
	} else {
		rows := sampleData(cfg.Data.SampleRows)
		provider = remote.NewMemoryProvider(rows, personColumns())
		slog.Info("serving generated dataset", "rows", len(rows))
	}

	// Create server with config
	server := web.NewServer(*cfg, provider, personColumns())

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// connectPool builds and verifies the pgx connection pool.
func connectPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	return pool, nil
}

// sampleData generates n deterministic-ish rows for running the server
// without a database.
func sampleData(n int) []person {
	names := []string{"Ada", "Bram", "Cleo", "Dmitri", "Elif", "Farid", "Grace", "Hana", "Ivo", "John"}
	cities := []string{"Oslo", "Lima", "Kyoto", "Austin", "Porto", "Nairobi"}

	rng := rand.New(rand.NewSource(42))
	rows := make([]person, n)
	for i := range rows {
		rows[i] = person{
			ID:       uuid.NewString(),
			Name:     fmt.Sprintf("%s %c.", names[i%len(names)], 'A'+rune(i%26)),
			Age:      18 + rng.Intn(50),
			City:     cities[i%len(cities)],
			JoinedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.Intn(2000)),
		}
	}
	return rows
}
