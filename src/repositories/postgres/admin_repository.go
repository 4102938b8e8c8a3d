// Package postgres implements repositories on top of a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khabaroff/admin-auth/src/models"
	"github.com/khabaroff/admin-auth/src/repositories"
)

// uniqueViolation is the SQLSTATE for duplicate keys
const uniqueViolation = "23505"

// AdminRepository stores admin users in PostgreSQL
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new PostgreSQL admin repository
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Create inserts a new admin user
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, username, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, admin.ID, admin.Username, admin.PasswordHash, admin.IsActive, admin.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repositories.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert admin user: %w", err)
	}
	return nil
}

// GetByUsername fetches the admin user with the given username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	query := `
		SELECT id, username, password_hash, is_active, created_at, last_login_at
		FROM admin_users
		WHERE username = $1
	`

	admin := &models.AdminUser{}
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.IsActive, &admin.CreatedAt, &admin.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to query admin user: %w", err)
	}

	return admin, nil
}

// UpdateLastLogin records the time of a successful login
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admin_users SET last_login_at = $1 WHERE id = $2`, at, adminID)
	if err != nil {
		return fmt.Errorf("failed to update last_login_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrAdminNotFound
	}
	return nil
}

// SetActive flips the activation flag for a username
func (r *AdminRepository) SetActive(ctx context.Context, username string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admin_users SET is_active = $1 WHERE username = $2`, active, username)
	if err != nil {
		return fmt.Errorf("failed to update is_active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrAdminNotFound
	}
	return nil
}

// Count returns the number of admin users
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admin users: %w", err)
	}
	return count, nil
}

// Ping checks that the pool can reach the server
func (r *AdminRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return fmt.Errorf("database connection not initialized")
	}
	return r.pool.Ping(ctx)
}

var _ repositories.AdminRepository = (*AdminRepository)(nil)
