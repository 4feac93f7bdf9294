// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

// roleRepository implements the adapter.RoleStore interface.
type roleRepository struct {
	*gormStore[entity.Role, model.RoleModel]
}

// NewRoleRepository creates a new role repository instance.
func NewRoleRepository(db *gorm.DB, logger *slog.Logger) adapter.RoleStore {
	return &roleRepository{
		gormStore: newGormStore(db, entity.KindRole, filter.Roles, model.RoleFromEntity, (*model.RoleModel).ToEntity, logger),
	}
}

// FindByName retrieves a role by its unique name.
func (r *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var roleModel model.RoleModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&roleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewNotFoundByName(entity.KindRole, name)
		}
		return nil, result.Error
	}
	return roleModel.ToEntity(), nil
}
