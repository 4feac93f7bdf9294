// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// gormStore is the shared store implementation behind every entity
// repository. E is the domain entity, M the database model; the two mapper
// functions convert between them.
type gormStore[E any, M any] struct {
	db       *gorm.DB
	kind     entity.Kind
	schema   filter.Schema
	toModel  func(*E) *M
	toEntity func(*M) *E
	logger   *slog.Logger
}

func newGormStore[E any, M any](
	db *gorm.DB,
	kind entity.Kind,
	schema filter.Schema,
	toModel func(*E) *M,
	toEntity func(*M) *E,
	logger *slog.Logger,
) *gormStore[E, M] {
	return &gormStore[E, M]{
		db:       db,
		kind:     kind,
		schema:   schema,
		toModel:  toModel,
		toEntity: toEntity,
		logger:   logger,
	}
}

// FindByID retrieves an entity by its ID.
func (s *gormStore[E, M]) FindByID(ctx context.Context, id uint) (*E, error) {
	var m M
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewNotFound(s.kind, id)
		}
		return nil, result.Error
	}
	return s.toEntity(&m), nil
}

// FindWithFilters retrieves all entities matching the filter set, applied
// through the store's filter schema.
func (s *gormStore[E, M]) FindWithFilters(ctx context.Context, set filter.Set) ([]*E, error) {
	var models []M
	tx := applyFilters(s.db.WithContext(ctx).Model(new(M)), s.schema, set, s.logger)
	if result := tx.Order("id ASC").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*E, len(models))
	for i := range models {
		entities[i] = s.toEntity(&models[i])
	}
	return entities, nil
}

// Create persists a new entity and backfills generated columns (id,
// timestamps) into it.
func (s *gormStore[E, M]) Create(ctx context.Context, e *E) error {
	m := s.toModel(e)
	if result := s.db.WithContext(ctx).Create(m); result.Error != nil {
		return result.Error
	}
	*e = *s.toEntity(m)
	return nil
}

// Update persists changed columns and returns the refreshed entity.
func (s *gormStore[E, M]) Update(ctx context.Context, e *E) (*E, error) {
	m := s.toModel(e)
	if result := s.db.WithContext(ctx).Save(m); result.Error != nil {
		return nil, result.Error
	}
	return s.toEntity(m), nil
}

// Delete removes an entity by its primary key. Dependent rows follow the
// foreign-key rules declared on the models.
func (s *gormStore[E, M]) Delete(ctx context.Context, e *E) error {
	result := s.db.WithContext(ctx).Delete(s.toModel(e))
	return result.Error
}
