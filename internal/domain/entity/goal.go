// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a savings or spending target over a date range.
// CategoryID is optional; when set, the category must share the goal's type.
type Goal struct {
	ID          uint
	UserID      uint
	TypeID      uint
	CategoryID  *uint
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	TargetValue decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
