package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/finrating/dashboard-client/internal/core/domain"
)

// apiError is the structured error envelope the API may return.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// classifyTransportFailure maps a failure where no HTTP response reached us
// into the domain taxonomy. Deadline expiry outranks the generic
// connectivity case.
func classifyTransportFailure(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return &domain.ClientError{Message: "request canceled"}
	default:
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
}

// classifyStatus maps a non-2xx HTTP response into the domain taxonomy, in
// priority order: 401, 413, server-supplied structured message, bare status.
func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusRequestEntityTooLarge:
		return domain.ErrPayloadTooLarge
	}

	var envelope apiError
	if err := gojson.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return &domain.ServerError{Status: status, Message: envelope.Message}
		}
		if envelope.Error != "" {
			return &domain.ServerError{Status: status, Message: envelope.Error}
		}
	}
	return &domain.ServerError{Status: status}
}

// outcomeLabel names an error kind for the request counter.
func outcomeLabel(err error) string {
	var ve *domain.ValidationError
	var ce *domain.ClientError
	var se *domain.ServerError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return "network_unavailable"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return "payload_too_large"
	case errors.As(err, &ve), errors.As(err, &ce):
		return "client_error"
	case errors.As(err, &se):
		return "server_error"
	default:
		return "error"
	}
}
