// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

// pqUniqueViolation is the postgres error code for a unique constraint
// violation.
const pqUniqueViolation = "23505"

// userRepository implements the adapter.UserStore interface.
type userRepository struct {
	*gormStore[entity.User, model.UserModel]
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB, logger *slog.Logger) adapter.UserStore {
	return &userRepository{
		gormStore: newGormStore(db, entity.KindUser, filter.Users, model.UserFromEntity, (*model.UserModel).ToEntity, logger),
	}
}

// Create persists a new user. A unique-index race on the email column that
// slips past the policy-level check surfaces as the same duplicate error.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.UserFromEntity(user)
	if result := r.db.WithContext(ctx).Create(userModel); result.Error != nil {
		var pqErr *pq.Error
		if errors.As(result.Error, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return domainerror.NewEmailExists(user.Email)
		}
		return result.Error
	}
	*user = *userModel.ToEntity()
	return nil
}

// FindByEmail retrieves a user by email, or (nil, nil) when absent.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}
