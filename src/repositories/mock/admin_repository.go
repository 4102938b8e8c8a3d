package mock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khabaroff/admin-auth/src/models"
	"github.com/khabaroff/admin-auth/src/repositories"
)

// AdminRepository is a mock implementation of repositories.AdminRepository
type AdminRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc          func(ctx context.Context, admin *models.AdminUser) error
	GetByUsernameFunc   func(ctx context.Context, username string) (*models.AdminUser, error)
	UpdateLastLoginFunc func(ctx context.Context, adminID uuid.UUID, at time.Time) error
	SetActiveFunc       func(ctx context.Context, username string, active bool) error
	CountFunc           func(ctx context.Context) (int64, error)
	PingFunc            func(ctx context.Context) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewAdminRepository creates a new mock admin repository
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	m.Calls["Create"] = append(m.Calls["Create"], admin)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	m.Calls["GetByUsername"] = append(m.Calls["GetByUsername"], username)
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, repositories.ErrAdminNotFound
}

func (m *AdminRepository) UpdateLastLogin(ctx context.Context, adminID uuid.UUID, at time.Time) error {
	m.Calls["UpdateLastLogin"] = append(m.Calls["UpdateLastLogin"], adminID)
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, adminID, at)
	}
	return nil
}

func (m *AdminRepository) SetActive(ctx context.Context, username string, active bool) error {
	m.Calls["SetActive"] = append(m.Calls["SetActive"], username)
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, username, active)
	}
	return nil
}

func (m *AdminRepository) Count(ctx context.Context) (int64, error) {
	m.Calls["Count"] = append(m.Calls["Count"], nil)
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *AdminRepository) Ping(ctx context.Context) error {
	m.Calls["Ping"] = append(m.Calls["Ping"], nil)
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Ensure AdminRepository implements the interface
var _ repositories.AdminRepository = (*AdminRepository)(nil)
