package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/explainmycode-backend/internal/db"
	"github.com/yungbote/explainmycode-backend/internal/http/handlers"
	"github.com/yungbote/explainmycode-backend/internal/platform/envutil"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/repos"
	"github.com/yungbote/explainmycode-backend/internal/server"
	"github.com/yungbote/explainmycode-backend/internal/services"
)

func main() {
	// local development convenience, ignored when no .env exists
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.Get(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	explanationRepo := repos.NewExplanationRepo(thePG, log)
	tutorialRepo := repos.NewTutorialRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	groqClient, err := services.NewGroqClient(log)
	if err != nil {
		log.Error("Could not init GroqClient", "error", err)
		os.Exit(1)
	}
	userService := services.NewUserService(log, userRepo)
	explanationService := services.NewExplanationService(log, groqClient, userRepo, explanationRepo)
	tutorialService := services.NewTutorialService(log, groqClient, userRepo, tutorialRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(log, userService)
	explanationHandler := handlers.NewExplanationHandler(log, explanationService)
	tutorialHandler := handlers.NewTutorialHandler(log, tutorialService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                log,
		HealthHandler:      healthHandler,
		UserHandler:        userHandler,
		ExplanationHandler: explanationHandler,
		TutorialHandler:    tutorialHandler,
	})

	port := envutil.Str("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
