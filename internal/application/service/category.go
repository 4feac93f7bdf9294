package service

import (
	"context"
	"log/slog"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// CategoryCreate is the input for creating a category. The owner is injected
// by the policy from the acting user, never supplied by the caller.
type CategoryCreate struct {
	TypeID uint
	Name   string
}

// Fields implements the Input interface.
func (c CategoryCreate) Fields() Fields {
	return Fields{"type_id": c.TypeID, "name": c.Name}
}

// CategoryUpdate is the input for updating a category.
type CategoryUpdate struct {
	TypeID uint
	Name   string
}

// Fields implements the Input interface.
func (u CategoryUpdate) Fields() Fields {
	return Fields{"type_id": u.TypeID, "name": u.Name}
}

func applyCategoryFields(c *entity.Category, fields Fields) {
	for name, value := range fields {
		switch name {
		case "user_id":
			if v, ok := value.(uint); ok {
				c.UserID = v
			}
		case "type_id":
			if v, ok := value.(uint); ok {
				c.TypeID = v
			}
		case "name":
			if v, ok := value.(string); ok {
				c.Name = v
			}
		}
	}
}

// CategoryService is the authorization policy for categories: users see and
// mutate only their own rows unless they are admins.
type CategoryService struct {
	engine *Engine[entity.Category, CategoryCreate, CategoryUpdate]
	users  *UserService
	types  *TypeService
	logger *slog.Logger
}

// NewCategoryService creates a category policy service.
func NewCategoryService(
	store adapter.Store[entity.Category],
	users *UserService,
	types *TypeService,
	logger *slog.Logger,
) *CategoryService {
	s := &CategoryService{
		users:  users,
		types:  types,
		logger: logger,
	}
	s.engine = NewEngine(store, entity.KindCategory, applyCategoryFields, Hooks[entity.Category, CategoryCreate, CategoryUpdate]{
		ValidateCreate: s.validateCreate,
		ValidateUpdate: s.validateUpdate,
		ValidateDelete: s.validateDelete,
	}, logger)
	return s
}

// GetByID retrieves a category, enforcing that only the owner or an admin may
// see it.
func (s *CategoryService) GetByID(ctx context.Context, id uint, actor *entity.User) (*entity.Category, error) {
	category, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, category.UserID, actor, "view"); err != nil {
		return nil, err
	}
	return category, nil
}

// List retrieves categories matching the filter set. For non-admins the
// owner filter is overwritten with the actor's id regardless of what the
// caller supplied; caller-supplied ownership filters are discarded.
func (s *CategoryService) List(ctx context.Context, set filter.Set, actor *entity.User) ([]*entity.Category, error) {
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

// Create persists a new category owned by actor.
func (s *CategoryService) Create(ctx context.Context, input CategoryCreate, actor *entity.User) (*entity.Category, error) {
	return s.engine.Create(ctx, input, Fields{"user_id": actor.ID}, actor)
}

// Update applies a category update on behalf of actor.
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryUpdate, actor *entity.User) (*entity.Category, error) {
	return s.engine.Update(ctx, id, input, nil, actor)
}

// Delete deletes a category on behalf of actor. Goals and transactions that
// referenced it keep existing with their category reference cleared by the
// store's set-null rule.
func (s *CategoryService) Delete(ctx context.Context, id uint, actor *entity.User) (*entity.Category, error) {
	return s.engine.Delete(ctx, id, actor)
}

func (s *CategoryService) authorizeOwner(ctx context.Context, ownerID uint, actor *entity.User, action string) error {
	if actor.ID == ownerID {
		return nil
	}
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !admin {
		return domainerror.NewForbidden("users can only " + action + " their own categories")
	}
	return nil
}

func (s *CategoryService) validateCreate(ctx context.Context, input CategoryCreate, _ *entity.User) error {
	_, err := s.types.GetByID(ctx, input.TypeID)
	return err
}

func (s *CategoryService) validateUpdate(ctx context.Context, id uint, input CategoryUpdate, actor *entity.User) (*entity.Category, error) {
	category, err := s.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if _, err := s.types.GetByID(ctx, input.TypeID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) validateDelete(ctx context.Context, id uint, actor *entity.User) (*entity.Category, error) {
	return s.GetByID(ctx, id, actor)
}
