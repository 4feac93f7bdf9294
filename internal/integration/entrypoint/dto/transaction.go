// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
)

// TransactionRequest represents the request body for transaction creation and
// update.
type TransactionRequest struct {
	TypeID     uint            `json:"type_id" binding:"required"`
	CategoryID *uint           `json:"category_id,omitempty"`
	Date       time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	Comment    string          `json:"comment,omitempty" binding:"max=500"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"user_id"`
	TypeID     uint            `json:"type_id"`
	CategoryID *uint           `json:"category_id,omitempty"`
	Date       time.Time       `json:"date"`
	Value      decimal.Decimal `json:"value"`
	Comment    string          `json:"comment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionSummaryResponse represents aggregated totals over transactions.
type TransactionSummaryResponse struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetTotal     decimal.Decimal `json:"net_total"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         transaction.ID,
		UserID:     transaction.UserID,
		TypeID:     transaction.TypeID,
		CategoryID: transaction.CategoryID,
		Date:       transaction.Date,
		Value:      transaction.Value,
		Comment:    transaction.Comment,
		CreatedAt:  transaction.CreatedAt,
		UpdatedAt:  transaction.UpdatedAt,
	}
}

// ToTransactionListResponse converts a list of transactions to a TransactionListResponse.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		out[i] = ToTransactionResponse(transaction)
	}
	return TransactionListResponse{Transactions: out}
}

// ToTransactionSummaryResponse converts totals to a TransactionSummaryResponse.
func ToTransactionSummaryResponse(totals *entity.TransactionTotals) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		IncomeTotal:  totals.IncomeTotal,
		ExpenseTotal: totals.ExpenseTotal,
		NetTotal:     totals.NetTotal,
	}
}

// ParseTransactionFilters builds a filter set from transaction list query
// parameters. Date and value bounds are inclusive.
func ParseTransactionFilters(ctx *gin.Context) filter.Set {
	set := filter.Set{}
	setList(set, ctx, "user_id")
	setList(set, ctx, "type_id")
	setList(set, ctx, "category_id")
	setDateBound(set, ctx, "date_gt")
	setDateBound(set, ctx, "date_lt")
	setDecimalBound(set, ctx, "value_gt")
	setDecimalBound(set, ctx, "value_lt")
	setKeywords(set, ctx, "comment")
	return set
}
