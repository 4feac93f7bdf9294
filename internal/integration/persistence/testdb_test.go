package persistence_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

// newTestDB opens an in-memory sqlite database with foreign keys enforced
// and the full schema migrated. The pool is pinned to a single connection so
// every query sees the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&model.RoleModel{},
		&model.TypeModel{},
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.GoalModel{},
		&model.EmailQueueModel{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedRole(t *testing.T, db *gorm.DB, name string, protected bool) *entity.Role {
	t.Helper()
	m := model.RoleFromEntity(entity.NewRole(name, protected))
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed role %q: %v", name, err)
	}
	return m.ToEntity()
}

func seedType(t *testing.T, db *gorm.DB, name string) *entity.Type {
	t.Helper()
	m := model.TypeFromEntity(entity.NewType(name))
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed type %q: %v", name, err)
	}
	return m.ToEntity()
}

func seedUser(t *testing.T, db *gorm.DB, roleID uint, email string) *entity.User {
	t.Helper()
	m := model.UserFromEntity(entity.NewUser(roleID, email, "not-a-real-hash"))
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}
	return m.ToEntity()
}

func seedCategory(t *testing.T, db *gorm.DB, userID, typeID uint, name string) *entity.Category {
	t.Helper()
	now := time.Now().UTC()
	m := model.CategoryFromEntity(&entity.Category{
		UserID:    userID,
		TypeID:    typeID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed category %q: %v", name, err)
	}
	return m.ToEntity()
}

func seedTransaction(t *testing.T, db *gorm.DB, userID, typeID uint, categoryID *uint, date time.Time, value string, comment string) *entity.Transaction {
	t.Helper()
	now := time.Now().UTC()
	m := model.TransactionFromEntity(&entity.Transaction{
		UserID:     userID,
		TypeID:     typeID,
		CategoryID: categoryID,
		Date:       date,
		Value:      decimal.RequireFromString(value),
		Comment:    comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return m.ToEntity()
}

func seedGoal(t *testing.T, db *gorm.DB, userID, typeID uint, categoryID *uint, name string, start, end time.Time, target string) *entity.Goal {
	t.Helper()
	now := time.Now().UTC()
	m := model.GoalFromEntity(&entity.Goal{
		UserID:      userID,
		TypeID:      typeID,
		CategoryID:  categoryID,
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		TargetValue: decimal.RequireFromString(target),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed goal %q: %v", name, err)
	}
	return m.ToEntity()
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}

var testCtx = context.Background()
