// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Role represents an access role assignable to users.
type Role struct {
	ID          uint
	Name        string
	IsProtected bool // Protected roles cannot be deleted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRole creates a new Role entity.
func NewRole(name string, isProtected bool) *Role {
	now := time.Now().UTC()
	return &Role{
		Name:        name,
		IsProtected: isProtected,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
