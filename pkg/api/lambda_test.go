package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pipedrive-webhook/pkg/clients/pipedrive"
	"pipedrive-webhook/pkg/config"
	"pipedrive-webhook/pkg/services"
)

func newLambdaHandlers(baseURL string) *Handlers {
	cfg := &config.Config{
		PipedriveAPIKey:   "token",
		PipedriveAuthMode: config.AuthModeQuery,
		PipedriveBaseURL:  baseURL + "/api/v1",
		LeadTitlePrefix:   "New Patient Inquiry",
		LeadCurrency:      "AUD",
		NoteTimezone:      "UTC",
	}
	logger := zap.NewNop()
	svc := services.NewLeadIngestionService(pipedrive.NewClient(cfg, nil, logger), cfg, logger)
	return NewHandlers(svc, logger)
}

func TestHandleLambda_Post(t *testing.T) {
	fake, server := newFakePipedrive(t)
	h := newLambdaHandlers(server.URL)

	body := `{"data":{"name":"Jane Doe","email":"jane@example.com","contact_number":"0400000000"}}`
	resp, err := h.HandleLambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            base64.StdEncoding.EncodeToString([]byte(body)),
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Successfully created lead in Pipedrive","leadId":99}`, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, []string{"persons", "leads", "notes"}, fake.paths)
}

func TestHandleLambda_Methods(t *testing.T) {
	fake, server := newFakePipedrive(t)
	h := newLambdaHandlers(server.URL)

	tests := []struct {
		method string
		status int
	}{
		{http.MethodOptions, http.StatusOK},
		{http.MethodGet, http.StatusOK},
		{http.MethodPut, http.StatusMethodNotAllowed},
		{http.MethodDelete, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp, err := h.HandleLambda(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: tt.method})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
	assert.Empty(t, fake.paths)
}

func TestHandleLambda_ValidationFailure(t *testing.T) {
	fake, server := newFakePipedrive(t)
	h := newLambdaHandlers(server.URL)

	resp, err := h.HandleLambda(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"data":{"name":"Jane"}}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, `"receivedData"`)
	assert.Empty(t, fake.paths)
}
