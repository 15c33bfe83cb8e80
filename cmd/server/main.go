package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"wedplan/internal/api"
	"wedplan/internal/api/handlers"
	"wedplan/internal/api/middleware"
	"wedplan/internal/engine/webhooks"
	"wedplan/internal/pkg/logger"
	"wedplan/internal/platform/auth"
	"wedplan/internal/platform/config"
	"wedplan/internal/platform/database"
	"wedplan/internal/platform/repositories"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	globalDB, err := database.NewGlobalDB(cfg.Database.Global)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to global DB")
	}
	defer globalDB.Close()

	globalDBWrapper := database.NewGlobalDBWrapper(globalDB)

	tenantDBPool := database.NewTenantDBPool(cfg.Database.Tenant)
	defer tenantDBPool.CloseAll()

	// Repositories (global DB)
	weddingRepo := repositories.NewWeddingRepository(globalDB)
	userRepo := repositories.NewUserRepository(globalDB)

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT)
	dispatcher := webhooks.NewDispatcher(weddingRepo, tenantDBPool, cfg.Webhooks.Timeout)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenSvc)
	tokenHandler := handlers.NewTokenHandler()
	webhookHandler := handlers.NewWebhookHandler()
	guestHandler := handlers.NewGuestHandler(dispatcher)
	taskHandler := handlers.NewTaskHandler(dispatcher)
	budgetHandler := handlers.NewBudgetHandler(dispatcher)
	giftHandler := handlers.NewGiftHandler(dispatcher)
	songHandler := handlers.NewSongHandler(dispatcher)
	healthHandler := handlers.NewHealthHandler(globalDBWrapper)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)
	tenantMiddleware := middleware.NewTenantMiddleware(weddingRepo, tenantDBPool)
	rateLimiter := middleware.NewRateLimiter()

	deps := &api.Dependencies{
		AuthHandler:      authHandler,
		TokenHandler:     tokenHandler,
		WebhookHandler:   webhookHandler,
		GuestHandler:     guestHandler,
		TaskHandler:      taskHandler,
		BudgetHandler:    budgetHandler,
		GiftHandler:      giftHandler,
		SongHandler:      songHandler,
		HealthHandler:    healthHandler,
		AuthMiddleware:   authMiddleware,
		TenantMiddleware: tenantMiddleware,
		RateLimiter:      rateLimiter,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Let in-flight webhook deliveries resolve and be logged before the
	// process exits.
	dispatcher.Wait()
}
