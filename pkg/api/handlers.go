package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pipedrive-webhook/pkg/mapper"
	"pipedrive-webhook/pkg/models"
	"pipedrive-webhook/pkg/services"
)

const (
	msgSuccess          = "Successfully created lead in Pipedrive"
	msgProcessingFailed = "Error processing webhook"
	msgInvalidJSON      = "Invalid JSON body"
	msgMethodNotAllowed = "Method Not Allowed"
	msgLive             = "Webhook endpoint is live"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	ingestionService services.LeadIngestionService
	logger           *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(ingestionService services.LeadIngestionService, logger *zap.Logger) *Handlers {
	return &Handlers{
		ingestionService: ingestionService,
		logger:           logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// WebhookStatus answers GET on the webhook path so the form platform can
// check the endpoint is reachable
func (h *Handlers) WebhookStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": msgLive,
	})
}

// Preflight answers OPTIONS; the CORS middleware has already set the headers
func (h *Handlers) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// MethodNotAllowed is used for every other method on a known path
func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.MessageResponse{Message: msgMethodNotAllowed})
}

// HandleSubmission relays a form submission into Pipedrive
func (h *Handlers) HandleSubmission(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("Error reading request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Error reading request"})
		return
	}

	status, response := h.process(c.Request.Context(), body)
	c.JSON(status, response)
}

// process runs one submission through the workflow and maps the outcome to
// a status code and response body. It is shared by the HTTP server and the
// Lambda entrypoint.
func (h *Handlers) process(ctx context.Context, body []byte) (int, interface{}) {
	h.logger.Debug("Received webhook body", zap.Int("bytes", len(body)))

	var sub models.Submission
	if err := json.Unmarshal(body, &sub); err != nil || sub == nil {
		return http.StatusBadRequest, models.MessageResponse{Message: msgInvalidJSON}
	}

	result, err := h.ingestionService.Ingest(ctx, sub)
	if err == nil {
		return http.StatusOK, models.SuccessResponse{
			Message: msgSuccess,
			LeadID:  result.LeadID,
		}
	}

	var validationErr *mapper.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, models.ValidationResponse{
			Message:      validationErr.Error(),
			ReceivedData: sub,
		}
	}

	response := models.ErrorResponse{
		Message: msgProcessingFailed,
		Error:   err.Error(),
	}
	var stepErr *services.StepError
	if errors.As(err, &stepErr) {
		response.LeadID = stepErr.LeadID
	}
	return http.StatusInternalServerError, response
}
