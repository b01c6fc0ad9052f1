package routes

import (
	"ecclesia-backend/internal/api/handlers"
	"ecclesia-backend/internal/api/middleware"
	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/backend"
	"ecclesia-backend/internal/config"
	"ecclesia-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(stores *backend.Stores, cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	validator := validator.New()

	authService, err := auth.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize services
	bootstrapService := service.NewBootstrapService(stores.Runner(cfg), stores.Profiles, validator)
	systemService := service.NewSystemService(stores.Tenants, stores.Profiles)
	profileService := service.NewProfileService(stores.Profiles, stores.Tenants)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(stores.Health, stores.Kind)
	bootstrapHandler := handlers.NewBootstrapHandler(bootstrapService)
	systemHandler := handlers.NewSystemHandler(systemService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	// Bootstrap accepts anonymous calls so the session guard can reject them
	// with its own error.
	bootstrapGroup := v1.Group("/bootstrap", authMiddleware.OptionalAuth())
	{
		bootstrapGroup.POST("", bootstrapHandler.Bootstrap)
		bootstrapGroup.POST("/stream", bootstrapHandler.Stream)
	}

	authed := v1.Group("", authMiddleware.RequireAuth())
	{
		authed.GET("/system/status", systemHandler.Status)
		authed.GET("/me/profile", profileHandler.GetMyProfile)
		authed.GET("/me/tenant", profileHandler.GetMyTenant)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router, nil
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(stores *backend.Stores) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(stores.Health, stores.Kind)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
