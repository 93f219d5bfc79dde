package main

import (
	"fmt"
	"os"

	"crane-safety-service/internal/auth"
	"crane-safety-service/internal/config"
	"crane-safety-service/internal/db"
	httphandler "crane-safety-service/internal/http"
	"crane-safety-service/internal/http/middleware"
	"crane-safety-service/internal/logger"
	"crane-safety-service/internal/repository"
	"crane-safety-service/internal/service"
	"crane-safety-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer func() {
		if err := db.Close(database); err != nil {
			appLogger.Error().Err(err).Msg("failed to close database")
		}
	}()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to init storage")
	}

	eventRepo := repository.NewEventRepository(database)
	analyticsRepo := repository.NewAnalyticsRepository(database)
	userRepo := repository.NewUserRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	eventService := service.NewEventService(eventRepo, store)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	reportService := service.NewReportService(eventRepo)
	authService := service.NewAuthService(userRepo, tokenIssuer)

	handler := httphandler.NewHandler(eventService, analyticsService, reportService, authService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	adminMiddleware := middleware.RequireAdmin()
	ingestMiddleware := middleware.IPAllowlist(cfg.Ingest.AllowedIPs, appLogger)
	router := httphandler.NewRouter(handler, authMiddleware, adminMiddleware, ingestMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting crane safety service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
