// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB, logger *slog.Logger) adapter.Store[entity.Category] {
	return newGormStore(db, entity.KindCategory, filter.Categories, model.CategoryFromEntity, (*model.CategoryModel).ToEntity, logger)
}
