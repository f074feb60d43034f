package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"pipedrive-webhook/pkg/models"
)

var lambdaHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
	"Content-Type":                 "application/json",
}

// HandleLambda serves the webhook behind API Gateway with the same method
// and status semantics as the HTTP router
func (h *Handlers) HandleLambda(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodOptions:
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    lambdaHeaders,
		}, nil
	case http.MethodGet:
		return lambdaResponse(http.StatusOK, map[string]string{"status": "ok", "message": msgLive})
	case http.MethodPost:
	default:
		return lambdaResponse(http.StatusMethodNotAllowed, models.MessageResponse{Message: msgMethodNotAllowed})
	}

	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			h.logger.Warn("Error decoding request body", zap.Error(err))
			return lambdaResponse(http.StatusBadRequest, models.MessageResponse{Message: msgInvalidJSON})
		}
		body = decoded
	}

	status, response := h.process(ctx, body)
	return lambdaResponse(status, response)
}

func lambdaResponse(status int, payload interface{}) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    lambdaHeaders,
		Body:       string(body),
	}, nil
}
