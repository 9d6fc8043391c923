// backend-go/cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/besco/backend-go/internal/api"
	"github.com/besco/backend-go/internal/cache"
	"github.com/besco/backend-go/internal/config"
	"github.com/besco/backend-go/internal/repository/postgres"
	"github.com/besco/backend-go/internal/service"
	"github.com/besco/backend-go/pkg/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}
	cancel()

	profitCache, err := cache.NewProfitCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Profit cache unavailable, falling back to no-op")
		profitCache = cache.NewNoopProfitCache()
	}

	customerRepo := postgres.NewCustomerRepository(db)
	materialRepo := postgres.NewMaterialRepository(db)
	purchaseRepo := postgres.NewPurchaseRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	userRepo := postgres.NewUserRepository(db)

	services := &api.Services{
		Auth:      service.NewAuthService(userRepo, cfg.Auth),
		Customers: service.NewCustomerService(customerRepo),
		Materials: service.NewMaterialService(materialRepo),
		Purchases: service.NewPurchaseService(purchaseRepo, materialRepo, profitCache),
		Orders:    service.NewOrderService(orderRepo, materialRepo, customerRepo, profitCache, cfg.Costs),
		Inventory: service.NewInventoryService(inventoryRepo),
		Profit:    service.NewProfitService(analyticsRepo, profitCache, cfg.Costs),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
