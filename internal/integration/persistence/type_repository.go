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

// typeRepository implements the adapter.TypeStore interface.
type typeRepository struct {
	*gormStore[entity.Type, model.TypeModel]
}

// NewTypeRepository creates a new type repository instance.
func NewTypeRepository(db *gorm.DB, logger *slog.Logger) adapter.TypeStore {
	return &typeRepository{
		gormStore: newGormStore(db, entity.KindType, filter.Types, model.TypeFromEntity, (*model.TypeModel).ToEntity, logger),
	}
}

// FindByName retrieves a type by its unique name.
func (r *typeRepository) FindByName(ctx context.Context, name string) (*entity.Type, error) {
	var typeModel model.TypeModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&typeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewNotFoundByName(entity.KindType, name)
		}
		return nil, result.Error
	}
	return typeModel.ToEntity(), nil
}
