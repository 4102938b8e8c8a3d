package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khabaroff/admin-auth/src/logging"
)

//go:embed schema.sql
var schemaSQL string

// Database holds the PostgreSQL connection pool
type Database struct {
	pool *pgxpool.Pool
}

// New creates a new database connection and brings the schema up to date
func New(ctx context.Context, databaseURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Configure connection pool
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &Database{pool: pool}

	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetPool returns the connection pool
func (db *Database) GetPool() *pgxpool.Pool {
	return db.pool
}

// Migrate executes the embedded schema and follow-up migrations
func (db *Database) Migrate(ctx context.Context) error {
	logger := logging.NewLogger("database")

	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := db.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database schema initialized")
	return nil
}

// runMigrations upgrades tables created by older releases
func (db *Database) runMigrations(ctx context.Context) error {
	logger := logging.NewLogger("database")

	// Migration 1: columns missing from tables created by older releases
	_, err := db.pool.Exec(ctx, `
		ALTER TABLE admin_users ADD COLUMN IF NOT EXISTS is_active BOOLEAN NOT NULL DEFAULT true;
		ALTER TABLE admin_users ADD COLUMN IF NOT EXISTS last_login_at TIMESTAMPTZ;
	`)
	if err != nil {
		return fmt.Errorf("failed to add admin_users columns: %w", err)
	}

	// Migration 2: older deployments tracked logins in last_login
	var hasLegacyColumn bool
	err = db.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'admin_users' AND column_name = 'last_login'
		)
	`).Scan(&hasLegacyColumn)
	if err != nil {
		return fmt.Errorf("failed to inspect admin_users columns: %w", err)
	}

	if hasLegacyColumn {
		result, err := db.pool.Exec(ctx, `
			UPDATE admin_users
			SET last_login_at = last_login
			WHERE last_login_at IS NULL AND last_login IS NOT NULL
		`)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to copy legacy last_login values")
		} else if result.RowsAffected() > 0 {
			logger.Info().Int64("rows", result.RowsAffected()).Msg("copied legacy last_login values")
		}

		if _, err := db.pool.Exec(ctx, `ALTER TABLE admin_users DROP COLUMN last_login`); err != nil {
			return fmt.Errorf("failed to drop last_login column: %w", err)
		}
	}

	logger.Debug().Msg("migrations completed")
	return nil
}

// Health checks if the database is healthy
func (db *Database) Health(ctx context.Context) error {
	if db == nil || db.pool == nil {
		return fmt.Errorf("database connection not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.pool.Ping(ctx)
}

// NewDatabaseFromPool creates a Database instance from an existing pool
// This is useful for testing handlers that depend on database.Database
func NewDatabaseFromPool(pool *pgxpool.Pool) *Database {
	return &Database{pool: pool}
}
