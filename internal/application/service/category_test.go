package service_test

import (
	"testing"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/application/service"
)

func TestCategoryCreateSetsOwnerFromActor(t *testing.T) {
	f := newFixture(t)

	category := f.createCategory(t, f.alice, f.expense.ID, "groceries")

	if category.UserID != f.alice.ID {
		t.Errorf("expected owner %d, got %d", f.alice.ID, category.UserID)
	}
	if category.ID == 0 {
		t.Error("expected generated id")
	}
}

func TestCategoryCreateRequiresExistingType(t *testing.T) {
	f := newFixture(t)

	_, err := f.categories.Create(testCtx, service.CategoryCreate{TypeID: 999, Name: "ghost"}, f.alice)
	assertNotFound(t, err)
}

func TestCategoryGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	category := f.createCategory(t, f.alice, f.expense.ID, "groceries")

	if _, err := f.categories.GetByID(testCtx, category.ID, f.alice); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	_, err := f.categories.GetByID(testCtx, category.ID, f.bob)
	assertForbidden(t, err, "users can only view their own categories")

	if _, err := f.categories.GetByID(testCtx, category.ID, f.admin); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestCategoryListScopesNonAdminsToOwnRows(t *testing.T) {
	f := newFixture(t)
	f.createCategory(t, f.alice, f.expense.ID, "groceries")
	f.createCategory(t, f.bob, f.expense.ID, "rent")

	// a caller-supplied owner filter is overwritten, not merged
	results, err := f.categories.List(testCtx, filter.Set{"user_id": []uint{f.bob.ID}}, f.alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 category, got %d", len(results))
	}
	if results[0].UserID != f.alice.ID {
		t.Errorf("expected alice's category, got owner %d", results[0].UserID)
	}
}

func TestCategoryListAdminSeesAll(t *testing.T) {
	f := newFixture(t)
	f.createCategory(t, f.alice, f.expense.ID, "groceries")
	f.createCategory(t, f.bob, f.expense.ID, "rent")

	results, err := f.categories.List(testCtx, nil, f.admin)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(results))
	}
}

func TestCategoryUpdateEnforcesOwnershipAndType(t *testing.T) {
	f := newFixture(t)
	category := f.createCategory(t, f.alice, f.expense.ID, "groceries")

	_, err := f.categories.Update(testCtx, category.ID, service.CategoryUpdate{TypeID: f.expense.ID, Name: "stolen"}, f.bob)
	assertForbidden(t, err, "users can only view their own categories")

	_, err = f.categories.Update(testCtx, category.ID, service.CategoryUpdate{TypeID: 999, Name: "ghost"}, f.alice)
	assertNotFound(t, err)

	updated, err := f.categories.Update(testCtx, category.ID, service.CategoryUpdate{TypeID: f.income.ID, Name: "refunds"}, f.alice)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "refunds" || updated.TypeID != f.income.ID {
		t.Errorf("unexpected update result: %+v", updated)
	}
}

func TestCategoryDeleteReturnsEntity(t *testing.T) {
	f := newFixture(t)
	category := f.createCategory(t, f.alice, f.expense.ID, "groceries")

	_, err := f.categories.Delete(testCtx, category.ID, f.bob)
	assertForbidden(t, err, "users can only view their own categories")

	deleted, err := f.categories.Delete(testCtx, category.ID, f.alice)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.Name != "groceries" {
		t.Errorf("expected pre-deletion entity, got %+v", deleted)
	}

	_, err = f.categories.Delete(testCtx, category.ID, f.alice)
	assertNotFound(t, err)
}
