// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionStore interface.
type transactionRepository struct {
	*gormStore[entity.Transaction, model.TransactionModel]
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB, logger *slog.Logger) adapter.TransactionStore {
	return &transactionRepository{
		gormStore: newGormStore(db, entity.KindTransaction, filter.Transactions, model.TransactionFromEntity, (*model.TransactionModel).ToEntity, logger),
	}
}

// Totals aggregates transaction values matching the filter set, grouped by
// type name, into income, expense and net totals.
func (r *transactionRepository) Totals(ctx context.Context, set filter.Set) (*entity.TransactionTotals, error) {
	type totalRow struct {
		TypeName string
		Total    decimal.Decimal
	}
	var rows []totalRow

	tx := applyFilters(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter.Transactions, set, r.logger)
	result := tx.
		Select("types.name AS type_name, COALESCE(SUM(transactions.value), 0) AS total").
		Joins("JOIN types ON types.id = transactions.type_id").
		Group("types.name").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &entity.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, row := range rows {
		switch row.TypeName {
		case entity.TypeNameIncome:
			totals.IncomeTotal = row.Total
		case entity.TypeNameExpense:
			totals.ExpenseTotal = row.Total
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}
