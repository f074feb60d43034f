// Lambda entry point for the webhook behind API Gateway
package main

import (
	"log"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"pipedrive-webhook/pkg/api"
	"pipedrive-webhook/pkg/clients/pipedrive"
	"pipedrive-webhook/pkg/config"
	"pipedrive-webhook/pkg/services"
	"pipedrive-webhook/pkg/utils"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Warn("Pipedrive is not configured", zap.Error(err))
	}

	client := pipedrive.NewClient(cfg, nil, logger)
	handlers := api.NewHandlers(services.NewLeadIngestionService(client, cfg, logger), logger)

	lambda.Start(handlers.HandleLambda)
}
