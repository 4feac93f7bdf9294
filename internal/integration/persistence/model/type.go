// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/piggybank/backend/internal/domain/entity"
)

// TypeModel represents the types table in the database.
type TypeModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the TypeModel.
func (TypeModel) TableName() string {
	return "types"
}

// ToEntity converts a TypeModel to a domain Type entity.
func (m *TypeModel) ToEntity() *entity.Type {
	return &entity.Type{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TypeFromEntity creates a TypeModel from a domain Type entity.
func TypeFromEntity(t *entity.Type) *TypeModel {
	return &TypeModel{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
