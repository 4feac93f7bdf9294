package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/application/service"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

func TestTransactionCreateWithoutCategory(t *testing.T) {
	f := newFixture(t)

	transaction := f.createTransaction(t, f.alice, f.income.ID, nil, "2026-01-05", "1000.00", "salary")

	if transaction.UserID != f.alice.ID {
		t.Errorf("expected owner %d, got %d", f.alice.ID, transaction.UserID)
	}
	if transaction.CategoryID != nil {
		t.Errorf("expected no category, got %v", *transaction.CategoryID)
	}
}

func TestTransactionCategoryMustShareType(t *testing.T) {
	f := newFixture(t)
	category := f.createCategory(t, f.alice, f.expense.ID, "groceries")

	_, err := f.transactions.Create(testCtx, service.TransactionCreate{
		TypeID:     f.income.ID,
		CategoryID: &category.ID,
		Date:       mustDate(t, "2026-01-05"),
		Value:      decimal.RequireFromString("10.00"),
	}, f.alice)

	var notAssociated *domainerror.NotAssociatedError
	if !errors.As(err, &notAssociated) {
		t.Fatalf("expected NotAssociatedError, got %v", err)
	}
	want := fmt.Sprintf("category %d is not of type %d", category.ID, f.income.ID)
	if notAssociated.Detail != want {
		t.Errorf("expected %q, got %q", want, notAssociated.Detail)
	}
}

func TestTransactionCannotUseOthersCategory(t *testing.T) {
	f := newFixture(t)
	category := f.createCategory(t, f.bob, f.expense.ID, "rent")

	_, err := f.transactions.Create(testCtx, service.TransactionCreate{
		TypeID:     f.expense.ID,
		CategoryID: &category.ID,
		Date:       mustDate(t, "2026-01-05"),
		Value:      decimal.RequireFromString("10.00"),
	}, f.alice)

	assertForbidden(t, err, "users can only view their own categories")
}

func TestTransactionGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	transaction := f.createTransaction(t, f.alice, f.income.ID, nil, "2026-01-05", "1000.00", "salary")

	_, err := f.transactions.GetByID(testCtx, transaction.ID, f.bob)
	assertForbidden(t, err, "users can only view their own transactions")

	if _, err := f.transactions.GetByID(testCtx, transaction.ID, f.admin); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestTransactionListScopesNonAdmins(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, f.alice, f.income.ID, nil, "2026-01-05", "1000.00", "salary")
	f.createTransaction(t, f.bob, f.income.ID, nil, "2026-01-05", "2000.00", "salary")

	results, err := f.transactions.List(testCtx, filter.Set{"user_id": []uint{f.bob.ID}}, f.alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 1 || results[0].UserID != f.alice.ID {
		t.Fatalf("expected only alice's transactions, got %d rows", len(results))
	}
}

func TestTransactionTotalsScopeNonAdmins(t *testing.T) {
	f := newFixture(t)
	f.createTransaction(t, f.alice, f.income.ID, nil, "2026-01-05", "1000.00", "salary")
	f.createTransaction(t, f.alice, f.expense.ID, nil, "2026-01-10", "250.00", "rent")
	f.createTransaction(t, f.bob, f.income.ID, nil, "2026-01-05", "9999.00", "salary")

	totals, err := f.transactions.Totals(testCtx, nil, f.alice)
	if err != nil {
		t.Fatalf("totals failed: %v", err)
	}
	if want := decimal.RequireFromString("1000.00"); !totals.IncomeTotal.Equal(want) {
		t.Errorf("expected income %s, got %s", want, totals.IncomeTotal)
	}
	if want := decimal.RequireFromString("750.00"); !totals.NetTotal.Equal(want) {
		t.Errorf("expected net %s, got %s", want, totals.NetTotal)
	}
}

func TestTransactionUpdateRevalidatesReferences(t *testing.T) {
	f := newFixture(t)
	expenseCategory := f.createCategory(t, f.alice, f.expense.ID, "groceries")
	transaction := f.createTransaction(t, f.alice, f.expense.ID, &expenseCategory.ID, "2026-01-05", "40.00", "weekly shop")

	_, err := f.transactions.Update(testCtx, transaction.ID, service.TransactionUpdate{
		TypeID:     f.income.ID,
		CategoryID: &expenseCategory.ID,
		Date:       transaction.Date,
		Value:      transaction.Value,
	}, f.alice)

	var notAssociated *domainerror.NotAssociatedError
	if !errors.As(err, &notAssociated) {
		t.Fatalf("expected NotAssociatedError, got %v", err)
	}

	updated, err := f.transactions.Update(testCtx, transaction.ID, service.TransactionUpdate{
		TypeID:     f.expense.ID,
		CategoryID: &expenseCategory.ID,
		Date:       transaction.Date,
		Value:      decimal.RequireFromString("45.50"),
		Comment:    "weekly shop, corrected",
	}, f.alice)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Value.Equal(decimal.RequireFromString("45.50")) {
		t.Errorf("expected corrected value, got %s", updated.Value)
	}
}

func TestTransactionDeleteEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	transaction := f.createTransaction(t, f.alice, f.income.ID, nil, "2026-01-05", "1000.00", "salary")

	_, err := f.transactions.Delete(testCtx, transaction.ID, f.bob)
	assertForbidden(t, err, "users can only view their own transactions")

	deleted, err := f.transactions.Delete(testCtx, transaction.ID, f.alice)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.Comment != "salary" {
		t.Errorf("expected pre-deletion entity, got %+v", deleted)
	}
}
