package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"vidya/backend/catalog"
	"vidya/backend/config"
	"vidya/backend/middleware"
	"vidya/backend/routes"
	"vidya/backend/session"
	"vidya/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(cfg)
	defer logger.Sync()

	// Load the course catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("catalog load failed", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("courses", cat.Len()))

	// Initialize local storage and restore any persisted session
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	store, err := session.NewStore(db, cat, logger)
	if err != nil {
		logger.Fatal("session restore failed", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Accept-Language",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, cat, store, cfg)

	// Start server
	logger.Fatal("server stopped", zap.Error(app.Listen(":"+cfg.ServerPort)))
}
