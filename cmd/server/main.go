package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rentease/rentease-backend/config"
	"github.com/rentease/rentease-backend/internal/app/controller"
	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/app/service"
	"github.com/rentease/rentease-backend/internal/db"
	"github.com/rentease/rentease-backend/internal/mailer"
	"github.com/rentease/rentease-backend/internal/middleware"
	"github.com/rentease/rentease-backend/internal/router"
	"github.com/rentease/rentease-backend/internal/scheduler"
	"github.com/rentease/rentease-backend/internal/storage"
	"github.com/rentease/rentease-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting RentEase Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	propertyRepo := repository.NewPropertyRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())

	// Initialize media store and mailer
	mediaStore := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	smtpMailer := mailer.NewSMTPMailer(&cfg.SMTP)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	passwordResetService := service.NewPasswordResetService(resetRepo, userRepo, smtpMailer)
	propertyService := service.NewPropertyService(propertyRepo, mediaStore)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	propertyController := controller.NewPropertyController(propertyService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		propertyController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start reset code cleanup scheduler
	resetScheduler := scheduler.NewResetCodeScheduler(passwordResetService)
	if err := resetScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reset code scheduler", err)
	}
	defer resetScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
