package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/call-assistant/pkg/callcontext"
	"github.com/johnquangdev/call-assistant/pkg/config"
)

const defaultAzureAPIVersion = "2024-06-01"

// OpenAIClient talks to Azure OpenAI or any OpenAI-compatible endpoint
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New builds the gateway from configuration. Without credentials it returns
// an Unconfigured client so the process still starts in demo mode.
func New(cfg *config.Config, logger *zap.Logger) Client {
	if cfg == nil || !cfg.LLMConfigured() {
		return Unconfigured{Reason: "provider credentials not configured"}
	}
	return NewOpenAIClient(cfg.LLM, logger)
}

// NewOpenAIClient creates a client for the configured provider
func NewOpenAIClient(cfg config.LLMConfig, logger *zap.Logger) *OpenAIClient {
	var clientConfig openai.ClientConfig
	if strings.EqualFold(cfg.Provider, "openai") {
		clientConfig = openai.DefaultConfig(cfg.APIKey)
		if cfg.Endpoint != "" {
			clientConfig.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
		}
	} else {
		clientConfig = openai.DefaultAzureConfig(cfg.APIKey, strings.TrimRight(cfg.Endpoint, "/"))
		clientConfig.APIVersion = defaultAzureAPIVersion
		if cfg.APIVersion != "" {
			clientConfig.APIVersion = cfg.APIVersion
		}
		// deployment names are used verbatim
		clientConfig.AzureModelMapperFunc = func(model string) string { return model }
	}

	c := &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.DeploymentName,
		timeout: cfg.Timeout,
		logger:  logger,
	}
	if cfg.MaxRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), 1)
	}
	return c
}

// Model returns the deployment name
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete runs a single chat completion. It never retries.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	if len(messages) == 0 {
		return "", unavailable("complete", errors.New("empty prompt"))
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", unavailable("pace", err)
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		MaxTokens:   opts.MaxOutputTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}
	if opts.ResponseFormat == ResponseFormatJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logFailure(ctx, err, start)
		return "", unavailable("chat completion", describe(err))
	}
	if len(resp.Choices) == 0 {
		return "", unavailable("chat completion", errors.New("empty choices"))
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", unavailable("chat completion", errors.New("empty content"))
	}

	if c.logger != nil {
		fields := append(callcontext.Fields(ctx),
			zap.String("model", c.model),
			zap.Int("messages", len(messages)),
			zap.Int("total_tokens", resp.Usage.TotalTokens),
			zap.Duration("duration", time.Since(start)),
		)
		c.logger.Debug("llm.completion", fields...)
	}
	return content, nil
}

func (c *OpenAIClient) logFailure(ctx context.Context, err error, start time.Time) {
	if c.logger == nil {
		return
	}
	fields := append(callcontext.Fields(ctx),
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)),
		zap.Error(describe(err)),
	)
	c.logger.Warn("llm.completion.failed", fields...)
}

// describe reduces provider errors to status and message; request details are dropped
func describe(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("provider status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("provider status %d", reqErr.HTTPStatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("timed out")
	}
	return err
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
