package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// GoalCreate is the input for creating a goal.
type GoalCreate struct {
	TypeID      uint
	CategoryID  *uint
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	TargetValue decimal.Decimal
}

// Fields implements the Input interface.
func (c GoalCreate) Fields() Fields {
	return Fields{
		"type_id":      c.TypeID,
		"category_id":  c.CategoryID,
		"name":         c.Name,
		"start_date":   c.StartDate,
		"end_date":     c.EndDate,
		"target_value": c.TargetValue,
	}
}

// GoalUpdate is the input for updating a goal.
type GoalUpdate struct {
	TypeID      uint
	CategoryID  *uint
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	TargetValue decimal.Decimal
}

// Fields implements the Input interface.
func (u GoalUpdate) Fields() Fields {
	return Fields{
		"type_id":      u.TypeID,
		"category_id":  u.CategoryID,
		"name":         u.Name,
		"start_date":   u.StartDate,
		"end_date":     u.EndDate,
		"target_value": u.TargetValue,
	}
}

func applyGoalFields(g *entity.Goal, fields Fields) {
	for name, value := range fields {
		switch name {
		case "user_id":
			if v, ok := value.(uint); ok {
				g.UserID = v
			}
		case "type_id":
			if v, ok := value.(uint); ok {
				g.TypeID = v
			}
		case "category_id":
			if v, ok := value.(*uint); ok {
				g.CategoryID = v
			}
		case "name":
			if v, ok := value.(string); ok {
				g.Name = v
			}
		case "start_date":
			if v, ok := value.(time.Time); ok {
				g.StartDate = v
			}
		case "end_date":
			if v, ok := value.(time.Time); ok {
				g.EndDate = v
			}
		case "target_value":
			if v, ok := value.(decimal.Decimal); ok {
				g.TargetValue = v
			}
		}
	}
}

// GoalService is the authorization policy for goals.
type GoalService struct {
	engine     *Engine[entity.Goal, GoalCreate, GoalUpdate]
	users      *UserService
	types      *TypeService
	categories *CategoryService
	logger     *slog.Logger
}

// NewGoalService creates a goal policy service.
func NewGoalService(
	store adapter.Store[entity.Goal],
	users *UserService,
	types *TypeService,
	categories *CategoryService,
	logger *slog.Logger,
) *GoalService {
	s := &GoalService{
		users:      users,
		types:      types,
		categories: categories,
		logger:     logger,
	}
	s.engine = NewEngine(store, entity.KindGoal, applyGoalFields, Hooks[entity.Goal, GoalCreate, GoalUpdate]{
		ValidateCreate: s.validateCreate,
		ValidateUpdate: s.validateUpdate,
		ValidateDelete: s.validateDelete,
	}, logger)
	return s
}

// GetByID retrieves a goal, enforcing ownership for non-admins.
func (s *GoalService) GetByID(ctx context.Context, id uint, actor *entity.User) (*entity.Goal, error) {
	goal, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, goal.UserID, actor); err != nil {
		return nil, err
	}
	return goal, nil
}

// List retrieves goals matching the filter set, scoped to the actor's own
// rows unless the actor is an admin.
func (s *GoalService) List(ctx context.Context, set filter.Set, actor *entity.User) ([]*entity.Goal, error) {
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !admin {
		set = set.Clone()
		set["user_id"] = []uint{actor.ID}
	}
	return s.engine.List(ctx, set)
}

// Create persists a new goal owned by actor.
func (s *GoalService) Create(ctx context.Context, input GoalCreate, actor *entity.User) (*entity.Goal, error) {
	return s.engine.Create(ctx, input, Fields{"user_id": actor.ID}, actor)
}

// Update applies a goal update on behalf of actor.
func (s *GoalService) Update(ctx context.Context, id uint, input GoalUpdate, actor *entity.User) (*entity.Goal, error) {
	return s.engine.Update(ctx, id, input, nil, actor)
}

// Delete deletes a goal on behalf of actor.
func (s *GoalService) Delete(ctx context.Context, id uint, actor *entity.User) (*entity.Goal, error) {
	return s.engine.Delete(ctx, id, actor)
}

func (s *GoalService) authorizeOwner(ctx context.Context, ownerID uint, actor *entity.User) error {
	if actor.ID == ownerID {
		return nil
	}
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !admin {
		return domainerror.NewForbidden("users can only view their own goals")
	}
	return nil
}

func (s *GoalService) validateReferences(ctx context.Context, typeID uint, categoryID *uint, actor *entity.User) error {
	if _, err := s.types.GetByID(ctx, typeID); err != nil {
		return err
	}
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *categoryID, actor)
	if err != nil {
		return err
	}
	if category.TypeID != typeID {
		return domainerror.NewNotAssociated(fmt.Sprintf("category %d is not of type %d", *categoryID, typeID))
	}
	return nil
}

func validateGoalBounds(startDate, endDate time.Time, targetValue decimal.Decimal) error {
	if !startDate.Before(endDate) {
		return domainerror.NewValidation("goal start date must be before end date")
	}
	if targetValue.IsNegative() {
		return domainerror.NewValidation("goal target value must not be negative")
	}
	return nil
}

func (s *GoalService) validateCreate(ctx context.Context, input GoalCreate, actor *entity.User) error {
	if err := validateGoalBounds(input.StartDate, input.EndDate, input.TargetValue); err != nil {
		return err
	}
	return s.validateReferences(ctx, input.TypeID, input.CategoryID, actor)
}

func (s *GoalService) validateUpdate(ctx context.Context, id uint, input GoalUpdate, actor *entity.User) (*entity.Goal, error) {
	goal, err := s.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := validateGoalBounds(input.StartDate, input.EndDate, input.TargetValue); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, input.TypeID, input.CategoryID, actor); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) validateDelete(ctx context.Context, id uint, actor *entity.User) (*entity.Goal, error) {
	return s.GetByID(ctx, id, actor)
}
