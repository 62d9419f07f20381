package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ytscout/ytscout/internal/config"
	credrepo "github.com/ytscout/ytscout/internal/repository/credential"
	"github.com/ytscout/ytscout/internal/service/credential"
)

// envAPIKey seeds the pool for one-off runs without touching the store
const envAPIKey = "YTSCOUT_API_KEY"

// openDatabase loads the configuration and connects to PostgreSQL
func openDatabase(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, dbPool, nil
}

// loadKeyManager builds a credential manager seeded from the store. A key in
// the environment joins the in-memory pool without being persisted.
func loadKeyManager(ctx context.Context, dbPool credrepo.Pool) (*credential.Manager, error) {
	manager := credential.NewManager(credrepo.NewRepository(dbPool))
	if err := manager.Load(ctx); err != nil {
		return nil, err
	}
	if envKey := os.Getenv(envAPIKey); envKey != "" {
		manager.Pool().Add(envKey)
	}
	return manager, nil
}
