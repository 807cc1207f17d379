package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sogebot/sogebot.dev-sub004/internal/api/routes"
	"github.com/sogebot/sogebot.dev-sub004/internal/auth"
	"github.com/sogebot/sogebot.dev-sub004/internal/config"
	"github.com/sogebot/sogebot.dev-sub004/internal/database"
	"github.com/sogebot/sogebot.dev-sub004/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from multiple possible locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewSugaredLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	accessLogger, err := utils.NewAccessLogger(&cfg.Logger)
	if err != nil {
		logger.Warnf("Failed to create access logger, falling back to main logger: %v", err)
		accessLogger = logger
	}

	logger.Info("Starting plugins registry...")
	logger.Infof("Database config: host=%s port=%d dbname=%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Schema is synchronized at startup, there is no separate
	// migration step.
	if err := db.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed")

	validator := auth.NewTokenValidator(&cfg.Auth, logger)
	logger.Infof("Token validation endpoint: %s", cfg.Auth.ValidationURL)

	router := routes.SetupRouter(db, validator, logger, accessLogger)

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Infof("Listening on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.GracefulTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
