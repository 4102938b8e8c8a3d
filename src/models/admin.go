package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser represents an admin user account
type AdminUser struct {
	ID           uuid.UUID  `json:"id" gorm:"type:text;primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string     `json:"-" gorm:"not null"` // never expose
	IsActive     bool       `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// TableName pins the table name shared by every store
func (AdminUser) TableName() string {
	return TableAdminUsers
}
