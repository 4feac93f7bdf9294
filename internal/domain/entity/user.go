// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// User represents a registered user of the piggybank system.
type User struct {
	ID           uint
	RoleID       uint
	Email        string
	PasswordHash string
	IsProtected  bool // Protected users cannot be deleted and their role never changes
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User entity.
func NewUser(roleID uint, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		RoleID:       roleID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
