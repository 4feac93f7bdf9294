// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Category represents a user-defined grouping for transactions and goals.
// A category always belongs to exactly one user and one type.
type Category struct {
	ID        uint
	UserID    uint
	TypeID    uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
