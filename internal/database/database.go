package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schema string

// DB wraps the connection pool shared by all repositories
type DB struct {
	Pool *pgxpool.Pool
}

// New opens a pool and verifies the connection
func New(ctx context.Context, pgURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close releases the pool
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	defer trackTime("Migrate", time.Now())
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info("database schema is up to date")
	return nil
}

func trackTime(funcName string, start time.Time) {
	log.Debugf("%s took %d ms", funcName, time.Since(start).Milliseconds())
}
