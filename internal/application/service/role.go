package service

import (
	"context"
	"log/slog"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// RoleCreate is the input for creating a role.
type RoleCreate struct {
	Name string
}

// Fields implements the Input interface.
func (c RoleCreate) Fields() Fields {
	return Fields{"name": c.Name}
}

// RoleUpdate is the input for updating a role.
type RoleUpdate struct {
	Name string
}

// Fields implements the Input interface.
func (u RoleUpdate) Fields() Fields {
	return Fields{"name": u.Name}
}

func applyRoleFields(r *entity.Role, fields Fields) {
	for name, value := range fields {
		switch name {
		case "name":
			if v, ok := value.(string); ok {
				r.Name = v
			}
		case "is_protected":
			if v, ok := value.(bool); ok {
				r.IsProtected = v
			}
		}
	}
}

// RoleService is the authorization policy for roles. Reads are open to any
// authenticated caller; mutations are admin-only. Protected roles are
// undeletable, and deleting a role cascades to delete its users.
type RoleService struct {
	engine *Engine[entity.Role, RoleCreate, RoleUpdate]
	store  adapter.RoleStore
	users  *UserService
	logger *slog.Logger
}

// NewRoleService creates a role policy service.
func NewRoleService(store adapter.RoleStore, users *UserService, logger *slog.Logger) *RoleService {
	s := &RoleService{
		store:  store,
		users:  users,
		logger: logger,
	}
	s.engine = NewEngine(store, entity.KindRole, applyRoleFields, Hooks[entity.Role, RoleCreate, RoleUpdate]{
		ValidateCreate: s.validateCreate,
		ValidateUpdate: s.validateUpdate,
		ValidateDelete: s.validateDelete,
	}, logger)
	return s
}

// GetByID retrieves a role by id.
func (s *RoleService) GetByID(ctx context.Context, id uint) (*entity.Role, error) {
	return s.engine.GetByID(ctx, id)
}

// GetByName retrieves a role by its logical name.
func (s *RoleService) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return s.store.FindByName(ctx, name)
}

// List retrieves all roles matching the filter set.
func (s *RoleService) List(ctx context.Context, set filter.Set) ([]*entity.Role, error) {
	return s.engine.List(ctx, set)
}

// Create persists a new role on behalf of actor.
func (s *RoleService) Create(ctx context.Context, input RoleCreate, actor *entity.User) (*entity.Role, error) {
	return s.engine.Create(ctx, input, nil, actor)
}

// Update applies a role update on behalf of actor.
func (s *RoleService) Update(ctx context.Context, id uint, input RoleUpdate, actor *entity.User) (*entity.Role, error) {
	return s.engine.Update(ctx, id, input, nil, actor)
}

// Delete deletes a role on behalf of actor. Users holding the role are
// deleted by the store's cascade rule.
func (s *RoleService) Delete(ctx context.Context, id uint, actor *entity.User) (*entity.Role, error) {
	return s.engine.Delete(ctx, id, actor)
}

func (s *RoleService) requireAdmin(ctx context.Context, actor *entity.User) error {
	admin, err := s.users.IsAdmin(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !admin {
		return domainerror.NewForbidden("only admins can manage roles")
	}
	return nil
}

func (s *RoleService) validateCreate(ctx context.Context, _ RoleCreate, actor *entity.User) error {
	return s.requireAdmin(ctx, actor)
}

func (s *RoleService) validateUpdate(ctx context.Context, id uint, _ RoleUpdate, actor *entity.User) (*entity.Role, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return s.engine.GetByID(ctx, id)
}

func (s *RoleService) validateDelete(ctx context.Context, id uint, actor *entity.User) (*entity.Role, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	role, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.IsProtected {
		return nil, domainerror.NewForbidden("protected roles cannot be deleted")
	}
	return role, nil
}
