package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/call-assistant/pkg/config"
)

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"choices": []map[string]interface{}{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}}},
		"usage":   map[string]int{"total_tokens": 12},
	}
}

func TestComplete_OpenAICompatible(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("  Dobrý den!  "))
	}))
	defer ts.Close()

	c := NewOpenAIClient(config.LLMConfig{
		Provider:       "openai",
		Endpoint:       ts.URL + "/v1",
		APIKey:         "test-key",
		DeploymentName: "gpt-4o",
		Timeout:        5 * time.Second,
	}, nil)

	out, err := c.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "Ahoj"},
	}, CompletionOptions{MaxOutputTokens: 500, Temperature: 0.7, TopP: 0.95})
	require.NoError(t, err)
	assert.Equal(t, "Dobrý den!", out)

	assert.Equal(t, "gpt-4o", got["model"])
	assert.EqualValues(t, 500, got["max_tokens"])
	msgs := got["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Nil(t, got["response_format"])
}

func TestComplete_AzureDeploymentAndJSONFormat(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/openai/deployments/gpt-4.1/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "azure-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatResponse(`{"reason":"x"}`))
	}))
	defer ts.Close()

	c := NewOpenAIClient(config.LLMConfig{
		Provider:       "azure",
		Endpoint:       ts.URL,
		APIKey:         "azure-key",
		DeploymentName: "gpt-4.1",
		Timeout:        5 * time.Second,
	}, nil)

	out, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}},
		CompletionOptions{ResponseFormat: ResponseFormatJSON})
	require.NoError(t, err)
	assert.Equal(t, `{"reason":"x"}`, out)
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, got["response_format"])
}

func TestComplete_UnauthorizedIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer ts.Close()

	c := NewOpenAIClient(config.LLMConfig{
		Provider: "openai", Endpoint: ts.URL + "/v1", APIKey: "super-secret-key", DeploymentName: "gpt-4o", Timeout: time.Second,
	}, nil)

	_, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, CompletionOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.NotContains(t, err.Error(), "super-secret-key")
}

func TestComplete_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := NewOpenAIClient(config.LLMConfig{
		Provider: "openai", Endpoint: ts.URL + "/v1", APIKey: "k", DeploymentName: "gpt-4o", Timeout: 50 * time.Millisecond,
	}, nil)

	_, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, CompletionOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestComplete_EmptyChoicesIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	c := NewOpenAIClient(config.LLMConfig{
		Provider: "openai", Endpoint: ts.URL + "/v1", APIKey: "k", DeploymentName: "gpt-4o", Timeout: time.Second,
	}, nil)

	_, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, CompletionOptions{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNew_WithoutCredentialsIsUnconfigured(t *testing.T) {
	c := New(&config.Config{LLM: config.LLMConfig{Provider: "azure"}}, nil)
	_, ok := c.(Unconfigured)
	require.True(t, ok)

	_, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, CompletionOptions{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, c.Model())
}
