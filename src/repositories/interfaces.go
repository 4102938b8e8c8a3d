package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/khabaroff/admin-auth/src/models"
)

var (
	// ErrAdminNotFound indicates no admin row matches the lookup
	ErrAdminNotFound = errors.New("admin user not found")

	// ErrDuplicateUsername indicates the username is already taken
	ErrDuplicateUsername = errors.New("username already exists")
)

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, username string, active bool) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
