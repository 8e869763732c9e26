package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable is returned for every failed completion: missing credentials,
// transport errors, timeouts and empty or malformed provider responses.
// Callers recover from it with their own fallback.
var ErrUnavailable = errors.New("language model unavailable")

// Provider-neutral chat roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ResponseFormat hints the provider about the expected payload
type ResponseFormat string

const (
	ResponseFormatText ResponseFormat = "text"
	ResponseFormatJSON ResponseFormat = "json_object"
)

// Message is one entry of a chat prompt
type Message struct {
	Role    string
	Content string
}

// CompletionOptions tunes a single completion call
type CompletionOptions struct {
	MaxOutputTokens int
	Temperature     float32
	TopP            float32
	ResponseFormat  ResponseFormat
}

// Client is the narrow contract of the language-model gateway
type Client interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
	// Model names the deployment or model used, for provenance only
	Model() string
}

// Unconfigured is used when no provider credentials are present.
// Every call fails with ErrUnavailable so callers take their fallback path.
type Unconfigured struct {
	Reason string
}

func (u Unconfigured) Complete(context.Context, []Message, CompletionOptions) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

func (u Unconfigured) Model() string { return "" }

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
