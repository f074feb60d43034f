package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pipedrive-webhook/pkg/api"
	"pipedrive-webhook/pkg/clients/pipedrive"
	"pipedrive-webhook/pkg/config"
	"pipedrive-webhook/pkg/services"
	"pipedrive-webhook/pkg/utils"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Missing credentials make every Pipedrive call fail, but the endpoint
	// still serves liveness and validation responses.
	if err := cfg.Validate(); err != nil {
		logger.Warn("Pipedrive is not configured", zap.Error(err))
	}

	// Initialize API client and service
	pipedriveClient := pipedrive.NewClient(cfg, nil, logger)
	ingestionService := services.NewLeadIngestionService(pipedriveClient, cfg, logger)

	gin.SetMode(cfg.GinMode)
	router := api.NewRouter(api.NewHandlers(ingestionService, logger), cfg.WebhookPath, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("webhookPath", cfg.WebhookPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
