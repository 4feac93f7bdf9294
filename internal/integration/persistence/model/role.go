// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/piggybank/backend/internal/domain/entity"
)

// RoleModel represents the roles table in the database.
type RoleModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	IsProtected bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RoleModel.
func (RoleModel) TableName() string {
	return "roles"
}

// ToEntity converts a RoleModel to a domain Role entity.
func (m *RoleModel) ToEntity() *entity.Role {
	return &entity.Role{
		ID:          m.ID,
		Name:        m.Name,
		IsProtected: m.IsProtected,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RoleFromEntity creates a RoleModel from a domain Role entity.
func RoleFromEntity(role *entity.Role) *RoleModel {
	return &RoleModel{
		ID:          role.ID,
		Name:        role.Name,
		IsProtected: role.IsProtected,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}
