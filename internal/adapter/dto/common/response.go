package common

import "github.com/johnquangdev/call-assistant/errors"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    errors.ErrorCode  `json:"code" swaggertype:"string" example:"SESSION_NOT_FOUND"`
	Message string            `json:"message" example:"Session not found"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	Environment string `json:"environment,omitempty" example:"development"`
}
