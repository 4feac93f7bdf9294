// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Well-known type names seeded at startup.
const (
	TypeNameIncome  = "income"
	TypeNameExpense = "expense"
)

// Type represents a transaction/goal/category classification (income or expense).
type Type struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewType creates a new Type entity.
func NewType(name string) *Type {
	now := time.Now().UTC()
	return &Type{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
