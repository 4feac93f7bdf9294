// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/piggybank/backend/config"
	"github.com/piggybank/backend/internal/infra/dependency"
	"github.com/piggybank/backend/internal/integration/persistence/model"
)

// TestContext holds the test state for each scenario. Every scenario gets a
// fresh in-memory database and a fresh server.
type TestContext struct {
	server *httptest.Server
	engine *gin.Engine
	db     *gorm.DB

	response     *http.Response
	responseBody []byte

	// tokens per logged-in email so scenarios can act as several users
	accessTokens  map[string]string
	refreshTokens map[string]string
	currentUser   string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// testConfig builds a configuration suitable for scenario runs: no redis, no
// email worker, known admin credentials.
func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Redis.URL = ""
	cfg.Email.WorkerEnabled = false
	cfg.JWT.Secret = "integration-test-secret"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = time.Hour
	cfg.Auth.InitialAdminEmail = "admin@example.com"
	cfg.Auth.InitialAdminPassword = "admin-password-123"
	return cfg
}

// newTestContext wires the full application against an in-memory database
// and starts an HTTP server for it.
func newTestContext() (*TestContext, error) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gormDB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(
		&model.RoleModel{},
		&model.TypeModel{},
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.GoalModel{},
		&model.EmailQueueModel{},
	); err != nil {
		return nil, err
	}

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	injector, err := dependency.NewInjector(cfg, gormDB, logger)
	if err != nil {
		return nil, err
	}
	if err := injector.Seeder.Seed(context.Background()); err != nil {
		return nil, err
	}

	engine := injector.Router.Setup(cfg.Server.Environment)
	server := httptest.NewServer(engine)

	return &TestContext{
		server:        server,
		engine:        engine,
		db:            gormDB,
		accessTokens:  make(map[string]string),
		refreshTokens: make(map[string]string),
	}, nil
}

// Close shuts down the scenario's server.
func (tc *TestContext) Close() {
	if tc.server != nil {
		tc.server.Close()
	}
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.Close()
		}
		return ctx, nil
	})

	registerSteps(ctx)
}
