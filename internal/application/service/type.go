package service

import (
	"context"
	"log/slog"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// TypeCreate is the input for creating a type.
type TypeCreate struct {
	Name string
}

// Fields implements the Input interface.
func (c TypeCreate) Fields() Fields {
	return Fields{"name": c.Name}
}

// TypeUpdate is the input for updating a type.
type TypeUpdate struct {
	Name string
}

// Fields implements the Input interface.
func (u TypeUpdate) Fields() Fields {
	return Fields{"name": u.Name}
}

func applyTypeFields(t *entity.Type, fields Fields) {
	for name, value := range fields {
		switch name {
		case "name":
			if v, ok := value.(string); ok {
				t.Name = v
			}
		}
	}
}

// TypeService is the authorization policy for types. Reads are open to any
// authenticated caller; mutations are admin-only. Deleting a type cascades to
// delete dependent categories, goals and transactions.
type TypeService struct {
	engine *Engine[entity.Type, TypeCreate, TypeUpdate]
	store  adapter.TypeStore
	users  *UserService
	logger *slog.Logger
}

// NewTypeService creates a type policy service.
func NewTypeService(store adapter.TypeStore, users *UserService, logger *slog.Logger) *TypeService {
	s := &TypeService{
		store:  store,
		users:  users,
		logger: logger,
	}
	s.engine = NewEngine(store, entity.KindType, applyTypeFields, Hooks[entity.Type, TypeCreate, TypeUpdate]{
		ValidateCreate: s.validateCreate,
		ValidateUpdate: s.validateUpdate,
		ValidateDelete: s.validateDelete,
	}, logger)
	return s
}

// GetByID retrieves a type by id.
func (s *TypeService) GetByID(ctx context.Context, id uint) (*entity.Type, error) {
	return s.engine.GetByID(ctx, id)
}

// GetByName retrieves a type by its logical name.
func (s *TypeService) GetByName(ctx context.Context, name string) (*entity.Type, error) {
	return s.store.FindByName(ctx, name)
}

// List retrieves all types matching the filter set.
func (s *TypeService) List(ctx context.Context, set filter.Set) ([]*entity.Type, error) {
	return s.engine.List(ctx, set)
}

// Create persists a new type on behalf of actor.
func (s *TypeService) Create(ctx context.Context, input TypeCreate, actor *entity.User) (*entity.Type, error) {
	return s.engine.Create(ctx, input, nil, actor)
}

// Update applies a type update on behalf of actor.
func (s *TypeService) Update(ctx context.Context, id uint, input TypeUpdate, actor *entity.User) (*entity.Type, error) {
	return s.engine.Update(ctx, id, input, nil, actor)
}

// Delete deletes a type on behalf of actor. Dependent categories, goals and
// transactions are removed by the store's cascade rules.
func (s *TypeService) Delete(ctx context.Context, id uint, actor *entity.User) (*entity.Type, error) {
	return s.engine.Delete(ctx, id, actor)
}

func (s *TypeService) requireAdmin(ctx context.Context, actor *entity.User) error {
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !admin {
		return domainerror.NewForbidden("only admins can manage types")
	}
	return nil
}

func (s *TypeService) validateCreate(ctx context.Context, _ TypeCreate, actor *entity.User) error {
	return s.requireAdmin(ctx, actor)
}

func (s *TypeService) validateUpdate(ctx context.Context, id uint, _ TypeUpdate, actor *entity.User) (*entity.Type, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return s.engine.GetByID(ctx, id)
}

func (s *TypeService) validateDelete(ctx context.Context, id uint, actor *entity.User) (*entity.Type, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return s.engine.GetByID(ctx, id)
}
