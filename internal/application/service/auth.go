package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

// RegisterInput represents the input for user registration.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput represents the input for user login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput represents the result of a successful registration or login.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthService handles registration, login and token lifecycle. It sits in
// front of the user policy: registration resolves the default role and
// injects it, so callers never choose their own role.
type AuthService struct {
	users       *UserService
	roles       *RoleService
	passwords   adapter.PasswordService
	tokens      adapter.TokenService
	emails      adapter.EmailQueueRepository
	defaultRole string
	logger      *slog.Logger
}

// NewAuthService creates an authentication service. defaultRole is the
// logical name of the role assigned to newly registered users. emails may be
// nil when the welcome email is disabled.
func NewAuthService(
	users *UserService,
	roles *RoleService,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
	emails adapter.EmailQueueRepository,
	defaultRole string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		passwords:   passwords,
		tokens:      tokens,
		emails:      emails,
		defaultRole: defaultRole,
		logger:      logger,
	}
}

// Register creates a new user with the default role and issues a token pair.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domainerror.NewValidation("invalid email format")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domainerror.NewValidation("password must be at least 8 characters")
	}

	role, err := s.roles.GetByName(ctx, s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default role: %w", err)
	}

	user, err := s.users.Create(ctx, UserCreate{Email: input.Email, Password: input.Password}, Fields{"role_id": role.ID})
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.tokens.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.queueWelcomeEmail(ctx, user)

	return &AuthOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Login verifies credentials and issues a token pair. Lookup and password
// failures collapse into the same error to prevent email enumeration.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerror.ErrInvalidCredentials
	}

	if err := s.passwords.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.ErrInvalidCredentials
	}

	tokenPair, err := s.tokens.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a refresh token: the presented token is validated, revoked
// and replaced by a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*adapter.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}

	valid, err := s.tokens.IsRefreshTokenValid(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}
	if !valid {
		return nil, domainerror.ErrTokenInvalidated
	}

	if err := s.tokens.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to invalidate old token: %w", err)
	}

	return s.tokens.GenerateTokenPair(ctx, claims.UserID, claims.Email)
}

// Logout revokes the refresh token. Revoking an already-invalid token is not
// an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if err := s.tokens.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		s.logger.Warn("failed to invalidate refresh token on logout", "error", err)
	}
}

// queueWelcomeEmail enqueues the welcome email best-effort; a queue failure
// never fails the registration.
func (s *AuthService) queueWelcomeEmail(ctx context.Context, user *entity.User) {
	if s.emails == nil {
		return
	}
	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		user.Email,
		"Welcome to Piggybank",
		map[string]interface{}{"email": user.Email},
	)
	if err := s.emails.Enqueue(ctx, job); err != nil {
		s.logger.Warn("failed to queue welcome email", "email", user.Email, "error", err)
	}
}
