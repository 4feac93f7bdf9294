package adapters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainerror "github.com/piggybank/backend/internal/domain/error"
	"github.com/piggybank/backend/internal/integration/adapters"
	"github.com/piggybank/backend/internal/integration/persistence"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

func newTokenRepo(t *testing.T) persistence.TokenRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.RefreshTokenModel{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return persistence.NewTokenRepository(db)
}

func TestTokenPairRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewTokenService("test-secret", 0, 0, newTokenRepo(t))

	pair, err := svc.GenerateTokenPair(ctx, 42, "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("access validation failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("refresh validation failed: %v", err)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewTokenService("test-secret", 0, 0, newTokenRepo(t))

	pair, err := svc.GenerateTokenPair(ctx, 42, "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected refresh token to be rejected as access token, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected access token to be rejected as refresh token, got %v", err)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewTokenService("test-secret", -time.Minute, time.Hour, newTokenRepo(t))

	pair, err := svc.GenerateTokenPair(ctx, 42, "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTamperedTokenIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewTokenService("test-secret", 0, 0, newTokenRepo(t))
	other := adapters.NewTokenService("other-secret", 0, 0, newTokenRepo(t))

	pair, err := other.GenerateTokenPair(ctx, 42, "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestRefreshTokenInvalidation(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewTokenService("test-secret", 0, 0, newTokenRepo(t))

	pair, err := svc.GenerateTokenPair(ctx, 42, "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("validity check failed: %v", err)
	}
	if !valid {
		t.Fatal("expected freshly issued refresh token to be valid")
	}

	if err := svc.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("invalidation failed: %v", err)
	}

	valid, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("validity check failed: %v", err)
	}
	if valid {
		t.Error("expected invalidated token to be rejected")
	}
}
