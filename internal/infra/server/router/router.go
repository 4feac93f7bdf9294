// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/piggybank/backend/internal/integration/entrypoint/controller"
	"github.com/piggybank/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	roleController        *controller.RoleController
	typeController        *controller.TypeController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	goalController        *controller.GoalController
	loginRateLimit        gin.HandlerFunc
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	roleController *controller.RoleController,
	typeController *controller.TypeController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	goalController *controller.GoalController,
	loginRateLimit gin.HandlerFunc,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		roleController:        roleController,
		typeController:        typeController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		goalController:        goalController,
		loginRateLimit:        loginRateLimit,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimit, r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
		}

		roles := v1.Group("/roles")
		roles.Use(r.authMiddleware.Authenticate())
		{
			roles.GET("", r.roleController.List)
			roles.GET("/:id", r.roleController.Get)
			roles.POST("", r.roleController.Create)
			roles.PUT("/:id", r.roleController.Update)
			roles.DELETE("/:id", r.roleController.Delete)
		}

		types := v1.Group("/types")
		types.Use(r.authMiddleware.Authenticate())
		{
			types.GET("", r.typeController.List)
			types.GET("/:id", r.typeController.Get)
			types.POST("", r.typeController.Create)
			types.PUT("/:id", r.typeController.Update)
			types.DELETE("/:id", r.typeController.Delete)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("", r.userController.List)
			users.GET("/:id", r.userController.Get)
			users.PUT("/:id", r.userController.Update)
			users.DELETE("/:id", r.userController.Delete)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.List)
			categories.GET("/:id", r.categoryController.Get)
			categories.POST("", r.categoryController.Create)
			categories.PUT("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		transactions := v1.Group("/transactions")
		transactions.Use(r.authMiddleware.Authenticate())
		{
			transactions.GET("", r.transactionController.List)
			transactions.GET("/summary", r.transactionController.Summary)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.POST("", r.transactionController.Create)
			transactions.PUT("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		goals := v1.Group("/goals")
		goals.Use(r.authMiddleware.Authenticate())
		{
			goals.GET("", r.goalController.List)
			goals.GET("/:id", r.goalController.Get)
			goals.POST("", r.goalController.Create)
			goals.PUT("/:id", r.goalController.Update)
			goals.DELETE("/:id", r.goalController.Delete)
		}
	}
}
