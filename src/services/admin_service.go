package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khabaroff/admin-auth/src/logging"
	"github.com/khabaroff/admin-auth/src/models"
	"github.com/khabaroff/admin-auth/src/repositories"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 255
	minPasswordLength = 8
)

// AdminService handles admin user operations
type AdminService struct {
	repo   repositories.AdminRepository
	cost   int
	now    func() time.Time
	logger zerolog.Logger
}

// NewAdminService creates a new admin service backed by repo
func NewAdminService(repo repositories.AdminRepository) *AdminService {
	return &AdminService{
		repo:   repo,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		logger: logging.NewLogger("admin_service"),
	}
}

// CreateAdminUser creates a new active admin user with hashed password
func (as *AdminService) CreateAdminUser(ctx context.Context, username, password string) (*models.AdminUser, error) {
	return as.createAdmin(ctx, username, password, true)
}

func (as *AdminService) createAdmin(ctx context.Context, username, password string, active bool) (*models.AdminUser, error) {
	if len(username) < 1 || len(username) > maxUsernameLength {
		return nil, ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    as.now().UTC(),
	}

	if err := as.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	return admin, nil
}

// HasAdmins checks if any admin users exist
func (as *AdminService) HasAdmins(ctx context.Context) (bool, error) {
	count, err := as.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check admin users: %w", err)
	}
	return count > 0, nil
}

// SetActive enables or disables login for username
func (as *AdminService) SetActive(ctx context.Context, username string, active bool) error {
	if err := as.repo.SetActive(ctx, username, active); err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to update admin user: %w", err)
	}
	return nil
}

// AuthenticateAdmin verifies username and password.
//
// The checks run in a fixed order: lookup, activation flag, password.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
// A failure to record last_login_at is logged and otherwise ignored.
func (as *AdminService) AuthenticateAdmin(ctx context.Context, username, password string) (*models.AdminUser, error) {
	admin, err := as.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, ErrAccountInactive
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	now := as.now().UTC()
	if err := as.repo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		as.logger.Warn().
			Err(err).
			Str("admin_id", admin.ID.String()).
			Str("username", admin.Username).
			Msg("failed to update last_login_at")
	} else {
		admin.LastLoginAt = &now
	}

	return admin, nil
}

// Ping reports whether the backing store is reachable
func (as *AdminService) Ping(ctx context.Context) error {
	return as.repo.Ping(ctx)
}
