package service_test

import (
	"testing"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/application/service"
)

func TestRoleMutationsAreAdminOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.roles.Create(testCtx, service.RoleCreate{Name: "auditor"}, f.alice)
	assertForbidden(t, err, "only admins can manage roles")

	_, err = f.roles.Update(testCtx, f.userRole.ID, service.RoleUpdate{Name: "renamed"}, f.alice)
	assertForbidden(t, err, "only admins can manage roles")

	_, err = f.roles.Delete(testCtx, f.userRole.ID, f.alice)
	assertForbidden(t, err, "only admins can manage roles")
}

func TestRoleReadsAreOpen(t *testing.T) {
	f := newFixture(t)

	roles, err := f.roles.List(testCtx, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}

	if _, err := f.roles.GetByID(testCtx, f.adminRole.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}
}

func TestAdminManagesRoles(t *testing.T) {
	f := newFixture(t)

	created, err := f.roles.Create(testCtx, service.RoleCreate{Name: "auditor"}, f.admin)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := f.roles.Update(testCtx, created.ID, service.RoleUpdate{Name: "read-only"}, f.admin)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "read-only" {
		t.Errorf("expected renamed role, got %q", updated.Name)
	}

	if _, err := f.roles.Delete(testCtx, created.ID, f.admin); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestProtectedRoleIsUndeletable(t *testing.T) {
	f := newFixture(t)

	_, err := f.roles.Delete(testCtx, f.adminRole.ID, f.admin)
	assertForbidden(t, err, "protected roles cannot be deleted")
}

func TestRoleKeywordFilter(t *testing.T) {
	f := newFixture(t)

	roles, err := f.roles.List(testCtx, filter.Set{"name": []string{"ADM"}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(roles) != 1 || roles[0].Name != "admin" {
		t.Fatalf("expected the admin role, got %d rows", len(roles))
	}
}

func TestTypeMutationsAreAdminOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.types.Create(testCtx, service.TypeCreate{Name: "transfer"}, f.alice)
	assertForbidden(t, err, "only admins can manage types")

	_, err = f.types.Update(testCtx, f.income.ID, service.TypeUpdate{Name: "renamed"}, f.alice)
	assertForbidden(t, err, "only admins can manage types")

	_, err = f.types.Delete(testCtx, f.income.ID, f.alice)
	assertForbidden(t, err, "only admins can manage types")
}

func TestTypeReadsAreOpen(t *testing.T) {
	f := newFixture(t)

	types, err := f.types.List(testCtx, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(types))
	}

	found, err := f.types.GetByName(testCtx, "income")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if found.ID != f.income.ID {
		t.Errorf("expected type %d, got %d", f.income.ID, found.ID)
	}
}

func TestAdminManagesTypes(t *testing.T) {
	f := newFixture(t)

	created, err := f.types.Create(testCtx, service.TypeCreate{Name: "transfer"}, f.admin)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.types.Delete(testCtx, created.ID, f.admin); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = f.types.GetByID(testCtx, created.ID)
	assertNotFound(t, err)
}
