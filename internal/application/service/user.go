package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/filter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// UserCreate is the input for creating a user. The role is never supplied by
// the caller; it is resolved and injected by the surrounding collaborator.
type UserCreate struct {
	Email    string
	Password string
}

// Fields implements the Input interface. The password is not a column; only
// its hash is persisted, and the hash is injected by the service itself.
func (c UserCreate) Fields() Fields {
	return Fields{"email": c.Email}
}

// UserUpdate is the input for updating a user. OldPassword and NewPassword
// are only consulted when a password rotation is requested (NewPassword set).
type UserUpdate struct {
	Email       string
	RoleID      uint
	OldPassword string
	NewPassword string
}

// Fields implements the Input interface.
func (u UserUpdate) Fields() Fields {
	return Fields{"email": u.Email, "role_id": u.RoleID}
}

func applyUserFields(u *entity.User, fields Fields) {
	for name, value := range fields {
		switch name {
		case "email":
			if v, ok := value.(string); ok {
				u.Email = v
			}
		case "role_id":
			if v, ok := value.(uint); ok {
				u.RoleID = v
			}
		case "password_hash":
			if v, ok := value.(string); ok {
				u.PasswordHash = v
			}
		case "is_protected":
			if v, ok := value.(bool); ok {
				u.IsProtected = v
			}
		}
	}
}

// UserService is the authorization policy for users. Its IsAdmin helper is
// the single point of truth for privilege across all other policies.
type UserService struct {
	engine    *Engine[entity.User, UserCreate, UserUpdate]
	store     adapter.UserStore
	roles     adapter.RoleStore
	passwords adapter.PasswordService
	adminRole string
	logger    *slog.Logger
}

// NewUserService creates a user policy service. adminRole is the logical name
// of the administrative role.
func NewUserService(
	store adapter.UserStore,
	roles adapter.RoleStore,
	passwords adapter.PasswordService,
	adminRole string,
	logger *slog.Logger,
) *UserService {
	s := &UserService{
		store:     store,
		roles:     roles,
		passwords: passwords,
		adminRole: adminRole,
		logger:    logger,
	}
	s.engine = NewEngine(store, entity.KindUser, applyUserFields, Hooks[entity.User, UserCreate, UserUpdate]{
		ValidateCreate: s.validateCreate,
		ValidateUpdate: s.validateUpdate,
		ValidateDelete: s.validateDelete,
	}, logger)
	return s
}

// IsAdmin reports whether the user holds the administrative role.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return false, err
	}
	return role.Name == s.adminRole, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return s.engine.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email, or (nil, nil) when absent.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.store.FindByEmail(ctx, email)
}

// List retrieves all users matching the filter set.
func (s *UserService) List(ctx context.Context, set filter.Set) ([]*entity.User, error) {
	return s.engine.List(ctx, set)
}

// Create validates and persists a new user. extra carries the policy-supplied
// columns (role_id, is_protected); the password is hashed here so that the
// plain text never reaches the persistence layer.
func (s *UserService) Create(ctx context.Context, input UserCreate, extra Fields) (*entity.User, error) {
	hash, err := s.passwords.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	merged := Fields{"password_hash": hash}
	for name, value := range extra {
		merged[name] = value
	}
	return s.engine.Create(ctx, input, merged, nil)
}

// Update validates and applies a user update on behalf of actor. When a
// password rotation is requested the new hash is injected as an extra field;
// the old-password check runs inside the validation hook.
func (s *UserService) Update(ctx context.Context, id uint, input UserUpdate, actor *entity.User) (*entity.User, error) {
	extra := Fields{}
	if input.NewPassword != "" {
		hash, err := s.passwords.HashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		extra["password_hash"] = hash
	}
	return s.engine.Update(ctx, id, input, extra, actor)
}

// Delete validates and deletes a user on behalf of actor, returning the user
// as it was before deletion. Dependent categories, goals and transactions are
// removed by the store's cascade rules.
func (s *UserService) Delete(ctx context.Context, id uint, actor *entity.User) (*entity.User, error) {
	return s.engine.Delete(ctx, id, actor)
}

func (s *UserService) validateCreate(ctx context.Context, input UserCreate, _ *entity.User) error {
	existing, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		s.logger.Warn("rejecting user creation, email taken", "email", input.Email)
		return domainerror.NewEmailExists(input.Email)
	}
	return nil
}

// validateUpdate runs the user update checks in a fixed order; later checks
// assume the invariants established by earlier ones (the target role must
// exist before protected-role immutability can be compared against it).
func (s *UserService) validateUpdate(ctx context.Context, id uint, input UserUpdate, actor *entity.User) (*entity.User, error) {
	actorIsAdmin, err := s.IsAdmin(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	// only the target user or an admin may update
	if actor.ID != id && !actorIsAdmin {
		return nil, domainerror.NewForbidden("users can only update their own account")
	}

	target, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// the requested role must exist
	if _, err := s.roles.FindByID(ctx, input.RoleID); err != nil {
		return nil, err
	}

	// a protected user's role never changes, admin included
	if target.IsProtected && input.RoleID != target.RoleID {
		return nil, domainerror.NewForbidden("protected users cannot change role")
	}

	// any role change by a non-admin is forbidden
	if input.RoleID != target.RoleID && !actorIsAdmin {
		return nil, domainerror.NewForbidden("users cannot change their own role")
	}

	// a changed email must not collide with another user
	if input.Email != target.Email {
		existing, err := s.store.FindByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domainerror.NewEmailExists(input.Email)
		}
	}

	// a password rotation requires the current password
	if input.NewPassword != "" {
		if err := s.passwords.VerifyPassword(target.PasswordHash, input.OldPassword); err != nil {
			return nil, domainerror.NewForbidden("current password does not match")
		}
	}

	return target, nil
}

func (s *UserService) validateDelete(ctx context.Context, id uint, actor *entity.User) (*entity.User, error) {
	if actor.ID != id {
		actorIsAdmin, err := s.IsAdmin(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if !actorIsAdmin {
			return nil, domainerror.NewForbidden("users can only delete their own account")
		}
	}

	target, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// protected users are undeletable, admin included
	if target.IsProtected {
		return nil, domainerror.NewForbidden("protected users cannot be deleted")
	}

	return target, nil
}
