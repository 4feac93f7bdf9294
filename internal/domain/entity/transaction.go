// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single financial movement recorded by a user.
// CategoryID is optional; when set, the category must share the transaction's
// type.
type Transaction struct {
	ID         uint
	UserID     uint
	TypeID     uint
	CategoryID *uint
	Date       time.Time
	Value      decimal.Decimal
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransactionTotals represents aggregated totals over a set of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}
