package pipedrive

import (
	"fmt"
	"strings"
)

// entity names the Pipedrive object an operation creates
func entity(operation string) string {
	return strings.TrimSuffix(operation, "s")
}

// APIError is a non-2xx (or id-less) response from Pipedrive. Body is the
// raw response so the caller can see exactly what Pipedrive rejected.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Failed to create %s: %s", entity(e.Operation), e.Body)
}

// TransportError is a failure to talk to Pipedrive at all: building the
// request, the network, or decoding the reply.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Failed to create %s: %v", entity(e.Operation), e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
