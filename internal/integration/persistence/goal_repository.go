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

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB, logger *slog.Logger) adapter.Store[entity.Goal] {
	return newGormStore(db, entity.KindGoal, filter.Goals, model.GoalFromEntity, (*model.GoalModel).ToEntity, logger)
}
