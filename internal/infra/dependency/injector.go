// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/piggybank/backend/config"
	"github.com/piggybank/backend/internal/application/adapter"
	"github.com/piggybank/backend/internal/application/service"
	"github.com/piggybank/backend/internal/infra/db"
	"github.com/piggybank/backend/internal/infra/server/router"
	"github.com/piggybank/backend/internal/integration/adapters"
	"github.com/piggybank/backend/internal/integration/email"
	"github.com/piggybank/backend/internal/integration/email/templates"
	"github.com/piggybank/backend/internal/integration/entrypoint/controller"
	"github.com/piggybank/backend/internal/integration/entrypoint/middleware"
	"github.com/piggybank/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Seeder      *db.Seeder
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, logger *slog.Logger) (*Injector, error) {
	// Create repositories
	roleRepo := persistence.NewRoleRepository(gormDB, logger)
	typeRepo := persistence.NewTypeRepository(gormDB, logger)
	userRepo := persistence.NewUserRepository(gormDB, logger)
	categoryRepo := persistence.NewCategoryRepository(gormDB, logger)
	transactionRepo := persistence.NewTransactionRepository(gormDB, logger)
	goalRepo := persistence.NewGoalRepository(gormDB, logger)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Create adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)

	// Create services
	userService := service.NewUserService(userRepo, roleRepo, passwordService, cfg.Auth.AdminRoleName, logger)
	roleService := service.NewRoleService(roleRepo, userService, logger)
	typeService := service.NewTypeService(typeRepo, userService, logger)
	categoryService := service.NewCategoryService(categoryRepo, userService, typeService, logger)
	transactionService := service.NewTransactionService(transactionRepo, userService, typeService, categoryService, logger)
	goalService := service.NewGoalService(goalRepo, userService, typeService, categoryService, logger)

	var welcomeQueue adapter.EmailQueueRepository
	if cfg.Email.WorkerEnabled {
		welcomeQueue = emailQueueRepo
	}
	authService := service.NewAuthService(userService, roleService, passwordService, tokenService, welcomeQueue, cfg.Auth.DefaultRoleName, logger)

	// Create controllers
	healthController := controller.NewHealthController()
	authController := controller.NewAuthController(authService)
	roleController := controller.NewRoleController(roleService)
	typeController := controller.NewTypeController(typeService)
	userController := controller.NewUserController(userService)
	categoryController := controller.NewCategoryController(categoryService)
	transactionController := controller.NewTransactionController(transactionService)
	goalController := controller.NewGoalController(goalService)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userService)
	loginRateLimit := middleware.RateLimit(newLoginLimiter(cfg, logger), logger)

	// Create router
	appRouter := router.NewRouter(
		healthController,
		authController,
		roleController,
		typeController,
		userController,
		categoryController,
		transactionController,
		goalController,
		loginRateLimit,
		authMiddleware,
	)

	seeder := db.NewSeeder(roleRepo, typeRepo, userRepo, passwordService, &cfg.Auth, logger)

	emailWorker, err := newEmailWorker(cfg, emailQueueRepo, logger)
	if err != nil {
		return nil, err
	}

	return &Injector{
		Config:      cfg,
		DB:          gormDB,
		Router:      appRouter,
		Seeder:      seeder,
		EmailWorker: emailWorker,
	}, nil
}

// newLoginLimiter picks the rate limiter backend: redis when configured,
// otherwise a per-process fixed window.
func newLoginLimiter(cfg *config.Config, logger *slog.Logger) middleware.Limiter {
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Warn("invalid redis URL, falling back to in-memory rate limiting", "error", err)
		} else {
			return middleware.NewRedisLimiter(redis.NewClient(opts), cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
		}
	}
	return middleware.NewMemoryLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
}

// newEmailWorker builds the background email worker. Without a resend API key
// the worker runs against a mock sender that only logs deliveries.
func newEmailWorker(cfg *config.Config, queue adapter.EmailQueueRepository, logger *slog.Logger) (*email.Worker, error) {
	if !cfg.Email.WorkerEnabled {
		return nil, nil
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		logger.Warn("no resend API key configured, email worker will use the mock sender")
		sender = email.NewMockEmailSender()
	}

	workerConfig := email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	}
	return email.NewWorker(queue, sender, renderer, workerConfig, logger), nil
}
