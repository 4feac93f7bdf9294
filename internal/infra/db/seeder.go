package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/piggybank/backend/config"
	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

// Seeder ensures the well-known rows exist at startup: the income/expense
// types, the configured roles, and the initial admin account. Seeding is
// idempotent; existing rows are left untouched.
type Seeder struct {
	roles     adapter.RoleStore
	types     adapter.TypeStore
	users     adapter.UserStore
	passwords adapter.PasswordService
	cfg       *config.AuthConfig
	logger    *slog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	roles adapter.RoleStore,
	types adapter.TypeStore,
	users adapter.UserStore,
	passwords adapter.PasswordService,
	cfg *config.AuthConfig,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		roles:     roles,
		types:     types,
		users:     users,
		passwords: passwords,
		cfg:       cfg,
		logger:    logger,
	}
}

// Seed creates the baseline types, roles and admin user if they are missing.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedTypes(ctx); err != nil {
		return err
	}
	if err := s.seedRoles(ctx); err != nil {
		return err
	}
	return s.seedAdminUser(ctx)
}

func (s *Seeder) seedTypes(ctx context.Context) error {
	for _, name := range []string{entity.TypeNameIncome, entity.TypeNameExpense} {
		_, err := s.types.FindByName(ctx, name)
		if err == nil {
			continue
		}
		var notFound *domainerror.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to look up type %q: %w", name, err)
		}
		if err := s.types.Create(ctx, entity.NewType(name)); err != nil {
			return fmt.Errorf("failed to seed type %q: %w", name, err)
		}
		s.logger.Info("seeded type", "name", name)
	}
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	for _, name := range s.cfg.InitialRoles {
		_, err := s.roles.FindByName(ctx, name)
		if err == nil {
			continue
		}
		var notFound *domainerror.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to look up role %q: %w", name, err)
		}
		role := entity.NewRole(name, name == s.cfg.AdminRoleName)
		if err := s.roles.Create(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
		s.logger.Info("seeded role", "name", name, "protected", role.IsProtected)
	}
	return nil
}

func (s *Seeder) seedAdminUser(ctx context.Context) error {
	if s.cfg.InitialAdminEmail == "" {
		return nil
	}

	existing, err := s.users.FindByEmail(ctx, s.cfg.InitialAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	adminRole, err := s.roles.FindByName(ctx, s.cfg.AdminRoleName)
	if err != nil {
		return fmt.Errorf("failed to look up admin role: %w", err)
	}

	hash, err := s.passwords.HashPassword(s.cfg.InitialAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.NewUser(adminRole.ID, s.cfg.InitialAdminEmail, hash)
	admin.IsProtected = true
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.Info("seeded admin user", "email", admin.Email)
	return nil
}
