// Package sqlite implements repositories on an embedded SQLite file through gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khabaroff/admin-auth/src/models"
	"github.com/khabaroff/admin-auth/src/repositories"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AdminRepository stores admin users in SQLite
type AdminRepository struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and migrates it.
// Use ":memory:" for a throwaway database.
func Open(path string) (*AdminRepository, error) {
	db, err := gorm.Open(sqlitedriver.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Every pooled connection to ":memory:" would see its own database
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	repo := &AdminRepository{db: db}
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Migrate creates or updates the admin_users table
func (r *AdminRepository) Migrate() error {
	if err := r.db.AutoMigrate(&models.AdminUser{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection
func (r *AdminRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	err := r.db.WithContext(ctx).Create(admin).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin user: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("id = ?", adminID).
		Update("last_login_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to update last_login_at: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) SetActive(ctx context.Context, username string, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("username = ?", username).
		Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update is_active: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admin users: %w", err)
	}
	return count, nil
}

func (r *AdminRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ repositories.AdminRepository = (*AdminRepository)(nil)
