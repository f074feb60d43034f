package pipedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pipedrive-webhook/pkg/config"
	"pipedrive-webhook/pkg/metrics"
	"pipedrive-webhook/pkg/models"
)

const (
	OperationPersons = "persons"
	OperationLeads   = "leads"
	OperationNotes   = "notes"
)

// Client defines the interface for interacting with the Pipedrive API
type Client interface {
	CreatePerson(ctx context.Context, person models.PersonRequest) (models.EntityID, error)
	CreateLead(ctx context.Context, lead models.LeadRequest) (models.EntityID, error)
	CreateNote(ctx context.Context, note models.NoteRequest) (models.EntityID, error)
}

type clientImpl struct {
	config     *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Pipedrive client. A nil httpClient means
// http.DefaultClient, so no timeout is applied beyond its defaults.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *clientImpl) CreatePerson(ctx context.Context, person models.PersonRequest) (models.EntityID, error) {
	return c.create(ctx, OperationPersons, person)
}

func (c *clientImpl) CreateLead(ctx context.Context, lead models.LeadRequest) (models.EntityID, error) {
	return c.create(ctx, OperationLeads, lead)
}

func (c *clientImpl) CreateNote(ctx context.Context, note models.NoteRequest) (models.EntityID, error) {
	return c.create(ctx, OperationNotes, note)
}

// create POSTs payload to /<operation> and returns data.id from the response.
func (c *clientImpl) create(ctx context.Context, operation string, payload interface{}) (models.EntityID, error) {
	if err := c.config.Validate(); err != nil {
		return "", &TransportError{Operation: operation, Err: fmt.Errorf("client is not configured: %w", err)}
	}

	endpoint, err := c.endpoint(operation)
	if err != nil {
		return "", &TransportError{Operation: operation, Err: err}
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Operation: operation, Err: fmt.Errorf("error creating payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", &TransportError{Operation: operation, Err: fmt.Errorf("error creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.PipedriveAuthMode == config.AuthModeBearer {
		req.Header.Set("Authorization", "Bearer "+c.config.PipedriveAPIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PipedriveLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PipedriveRequests.WithLabelValues(operation, "error").Inc()
		return "", &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()
	metrics.PipedriveRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Operation: operation, Err: fmt.Errorf("error reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Pipedrive rejected request",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		return "", &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var created models.CreateResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", &TransportError{Operation: operation, Err: fmt.Errorf("error parsing response: %w", err)}
	}
	if created.Data == nil || created.Data.ID == nil {
		return "", &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
	}

	id := *created.Data.ID
	c.logger.Debug("Created Pipedrive entity",
		zap.String("operation", operation),
		zap.String("id", id.String()))
	return id, nil
}

func (c *clientImpl) endpoint(operation string) (string, error) {
	base := strings.TrimRight(c.config.PipedriveBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.pipedrive.com/api/v1", c.config.PipedriveCompanyDomain)
	}

	u, err := url.Parse(base + "/" + operation)
	if err != nil {
		return "", fmt.Errorf("invalid Pipedrive URL: %w", err)
	}

	if c.config.PipedriveAuthMode == config.AuthModeQuery {
		q := u.Query()
		q.Set("api_token", c.config.PipedriveAPIKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
