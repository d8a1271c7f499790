package client

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed call.
type Kind string

const (
	KindValidation Kind = "validation" // 400, 422
	KindAuth       Kind = "auth"       // 401, 403
	KindDomain     Kind = "domain"     // any other non-2xx
	KindNetwork    Kind = "network"    // no usable response
)

// APIError is returned for every failed call. Message is never empty.
type APIError struct {
	Status    int      // 0 when the request never completed
	Message   string
	Code      string   // machine readable, e.g. "not_found"
	Details   []string // field-level messages from the server
	Kind      Kind
	RequestID string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// IsAuth reports whether the session must sign in again.
func (e *APIError) IsAuth() bool { return e.Kind == KindAuth }

func kindOf(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case 0:
		return KindNetwork
	default:
		return KindDomain
	}
}

func codeOf(status int) string {
	switch status {
	case 0:
		return "network_error"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "rate_limited"
	}
	if status >= 500 {
		return "server_error"
	}
	return "request_failed"
}

// newAPIError builds the error for status, preferring the server message.
func newAPIError(status int, message string, details []string, requestID string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "request failed"
	}
	return &APIError{
		Status:    status,
		Message:   message,
		Code:      codeOf(status),
		Details:   details,
		Kind:      kindOf(status),
		RequestID: requestID,
	}
}
