package main

import (
	"log"

	"ecclesia-backend/internal/api/routes"
	"ecclesia-backend/internal/backend"
	"ecclesia-backend/internal/config"
	"ecclesia-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "ecclesia-backend/docs" // This is needed for swag
)

//	@title			Ecclesia Backend API
//	@version		1.0
//	@description	Backend for the multi-tenant church management app. Bootstraps tenants and their first administrator, and reports which screen a signed-in client should land on.

//	@contact.name	API Support
//	@contact.email	support@example.com

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:7008
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Setup(cfg.LogLevel, nil)

	stores, err := backend.Open(cfg)
	if err != nil {
		logrus.Fatal("Failed to open data store: ", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close data store")
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := routes.SetupRoutes(stores, cfg)
	if err != nil {
		logrus.Fatal("Failed to set up routes: ", err)
	}

	port := cfg.Port
	if port == "" {
		port = "7008"
	}

	logrus.WithFields(logrus.Fields{
		"port":       port,
		"data_store": stores.Kind,
	}).Info("Starting server")
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}
