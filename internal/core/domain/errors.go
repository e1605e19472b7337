package domain

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrPayloadTooLarge = errors.New("payload too large")
var ErrNetworkUnavailable = errors.New("network unavailable")
var ErrTimeout = errors.New("request timed out")
var ErrNoFileSelected = errors.New("no file selected")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidTransition = errors.New("invalid upload state transition")

// ValidationError reports a client-side check that failed before any
// network call was issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ClientError reports a failure that happened before the request left the
// process (marshalling, request construction).
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string { return e.Message }

// ServerError carries a structured message returned by the API, or just the
// HTTP status when the body had none.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Server error: %d", e.Status)
}

// UserMessage maps an error from the transport or an orchestrator to the
// single message shown to the user for that failed operation.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkUnavailable):
		return "Cannot connect to server. Please check if the backend is running."
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized. Please login again."
	case errors.Is(err, ErrPayloadTooLarge):
		return "File is too large. Maximum size is 50MB."
	case errors.Is(err, ErrTimeout):
		return "The request timed out. Please try again."
	case errors.Is(err, ErrNoFileSelected):
		return "Please select a file first."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ce *ClientError
	if errors.As(err, &ce) {
		return "Error: " + ce.Message
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
