package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/persistence"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

var testCtx = context.Background()

// fakePasswordService hashes without the bcrypt cost so policy tests stay
// fast. The hash is reversible on purpose; only equality matters here.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// fixture wires the full service stack over an in-memory database with the
// baseline roles, types and three users seeded.
type fixture struct {
	db           *gorm.DB
	users        *service.UserService
	roles        *service.RoleService
	types        *service.TypeService
	categories   *service.CategoryService
	transactions *service.TransactionService
	goals        *service.GoalService

	adminRole *entity.Role
	userRole  *entity.Role
	income    *entity.Type
	expense   *entity.Type
	admin     *entity.User
	alice     *entity.User
	bob       *entity.User
}

func newFixture(t *testing.T) *fixture {
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

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	roleRepo := persistence.NewRoleRepository(db, log)
	typeRepo := persistence.NewTypeRepository(db, log)
	userRepo := persistence.NewUserRepository(db, log)
	categoryRepo := persistence.NewCategoryRepository(db, log)
	transactionRepo := persistence.NewTransactionRepository(db, log)
	goalRepo := persistence.NewGoalRepository(db, log)

	users := service.NewUserService(userRepo, roleRepo, fakePasswordService{}, "admin", log)
	roles := service.NewRoleService(roleRepo, users, log)
	types := service.NewTypeService(typeRepo, users, log)
	categories := service.NewCategoryService(categoryRepo, users, types, log)
	transactions := service.NewTransactionService(transactionRepo, users, types, categories, log)
	goals := service.NewGoalService(goalRepo, users, types, categories, log)

	f := &fixture{
		db:           db,
		users:        users,
		roles:        roles,
		types:        types,
		categories:   categories,
		transactions: transactions,
		goals:        goals,
	}

	f.adminRole = f.seedRole(t, "admin", true)
	f.userRole = f.seedRole(t, "user", false)
	f.income = f.seedType(t, entity.TypeNameIncome)
	f.expense = f.seedType(t, entity.TypeNameExpense)
	f.admin = f.seedUser(t, f.adminRole.ID, "admin@example.com", true)
	f.alice = f.seedUser(t, f.userRole.ID, "alice@example.com", false)
	f.bob = f.seedUser(t, f.userRole.ID, "bob@example.com", false)

	return f
}

func (f *fixture) seedRole(t *testing.T, name string, protected bool) *entity.Role {
	t.Helper()
	m := model.RoleFromEntity(entity.NewRole(name, protected))
	if err := f.db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed role %q: %v", name, err)
	}
	return m.ToEntity()
}

func (f *fixture) seedType(t *testing.T, name string) *entity.Type {
	t.Helper()
	m := model.TypeFromEntity(entity.NewType(name))
	if err := f.db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed type %q: %v", name, err)
	}
	return m.ToEntity()
}

func (f *fixture) seedUser(t *testing.T, roleID uint, email string, protected bool) *entity.User {
	t.Helper()
	u := entity.NewUser(roleID, email, "hashed:secret123")
	u.IsProtected = protected
	m := model.UserFromEntity(u)
	if err := f.db.Create(m).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}
	return m.ToEntity()
}

func (f *fixture) createCategory(t *testing.T, actor *entity.User, typeID uint, name string) *entity.Category {
	t.Helper()
	category, err := f.categories.Create(testCtx, service.CategoryCreate{TypeID: typeID, Name: name}, actor)
	if err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}

func (f *fixture) createTransaction(t *testing.T, actor *entity.User, typeID uint, categoryID *uint, day, value, comment string) *entity.Transaction {
	t.Helper()
	transaction, err := f.transactions.Create(testCtx, service.TransactionCreate{
		TypeID:     typeID,
		CategoryID: categoryID,
		Date:       mustDate(t, day),
		Value:      decimal.RequireFromString(value),
		Comment:    comment,
	}, actor)
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return transaction
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}
