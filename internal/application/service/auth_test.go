package service_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/domain/entity"
	domainerror "github.com/piggybank/backend/internal/domain/error"
	"github.com/piggybank/backend/internal/integration/adapters"
	"github.com/piggybank/backend/internal/integration/persistence"
)

func newAuthFixture(t *testing.T) (*fixture, *service.AuthService) {
	t.Helper()
	f := newFixture(t)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenRepo := persistence.NewTokenRepository(f.db)
	tokens := adapters.NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour, tokenRepo)
	emailQueue := persistence.NewEmailQueueRepository(f.db)

	auth := service.NewAuthService(f.users, f.roles, fakePasswordService{}, tokens, emailQueue, "user", log)
	return f, auth
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	f, auth := newAuthFixture(t)

	out, err := auth.Register(testCtx, service.RegisterInput{Email: "carol@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if out.User.RoleID != f.userRole.ID {
		t.Errorf("expected default role %d, got %d", f.userRole.ID, out.User.RoleID)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if out.User.PasswordHash != "hashed:secret123" {
		t.Errorf("expected hashed password to be stored, got %q", out.User.PasswordHash)
	}
}

func TestRegisterQueuesWelcomeEmail(t *testing.T) {
	f, auth := newAuthFixture(t)

	if _, err := auth.Register(testCtx, service.RegisterInput{Email: "carol@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	queue := persistence.NewEmailQueueRepository(f.db)
	jobs, err := queue.GetPendingJobs(testCtx, 10)
	if err != nil {
		t.Fatalf("failed to read queue: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 queued email, got %d", len(jobs))
	}
	job := jobs[0]
	if job.TemplateType != entity.TemplateWelcome {
		t.Errorf("expected welcome template, got %q", job.TemplateType)
	}
	if job.RecipientEmail != "carol@example.com" {
		t.Errorf("expected recipient carol@example.com, got %q", job.RecipientEmail)
	}
	if job.Status != entity.EmailStatusPending {
		t.Errorf("expected pending status, got %q", job.Status)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	_, auth := newAuthFixture(t)

	_, err := auth.Register(testCtx, service.RegisterInput{Email: "not-an-email", Password: "secret123"})
	assertValidation(t, err, "invalid email format")

	_, err = auth.Register(testCtx, service.RegisterInput{Email: "carol@example.com", Password: "short"})
	assertValidation(t, err, "password must be at least 8 characters")
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	_, auth := newAuthFixture(t)

	_, err := auth.Register(testCtx, service.RegisterInput{Email: "alice@example.com", Password: "secret123"})

	var emailExists *domainerror.EmailExistsError
	if !errors.As(err, &emailExists) {
		t.Fatalf("expected EmailExistsError, got %v", err)
	}
}

func TestLoginVerifiesCredentials(t *testing.T) {
	f, auth := newAuthFixture(t)

	out, err := auth.Login(testCtx, service.LoginInput{Email: f.alice.Email, Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if out.User.ID != f.alice.ID {
		t.Errorf("expected user %d, got %d", f.alice.ID, out.User.ID)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f, auth := newAuthFixture(t)

	_, wrongPassword := auth.Login(testCtx, service.LoginInput{Email: f.alice.Email, Password: "wrong"})
	_, unknownEmail := auth.Login(testCtx, service.LoginInput{Email: "ghost@example.com", Password: "secret123"})

	if !errors.Is(wrongPassword, domainerror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domainerror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("login failures must not reveal which field was wrong")
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	f, auth := newAuthFixture(t)

	out, err := auth.Login(testCtx, service.LoginInput{Email: f.alice.Email, Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	pair, err := auth.Refresh(testCtx, out.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if pair.RefreshToken == out.RefreshToken {
		t.Error("expected a new refresh token")
	}

	// the presented token is single-use
	if _, err := auth.Refresh(testCtx, out.RefreshToken); !errors.Is(err, domainerror.ErrTokenInvalidated) {
		t.Errorf("expected ErrTokenInvalidated on reuse, got %v", err)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	_, auth := newAuthFixture(t)

	if _, err := auth.Refresh(testCtx, "not-a-jwt"); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f, auth := newAuthFixture(t)

	out, err := auth.Login(testCtx, service.LoginInput{Email: f.alice.Email, Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	auth.Logout(testCtx, out.RefreshToken)

	if _, err := auth.Refresh(testCtx, out.RefreshToken); !errors.Is(err, domainerror.ErrTokenInvalidated) {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}
}
