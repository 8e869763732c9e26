package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "AZURE_AI_PROVIDER", "AZURE_AI_ENDPOINT", "AZURE_AI_KEY",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "BODY_LIMIT", "TRUSTED_PROXIES")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "azure", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.DeploymentName)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "cs-CZ-AntoninNeural", cfg.Speech.Voice)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 30*time.Minute, cfg.Session.Retention)
	assert.False(t, cfg.LLMConfigured())
	assert.Equal(t, "10M", cfg.Server.BodyLimit)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoad_PrefixedSections(t *testing.T) {
	t.Setenv("AZURE_AI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_AI_KEY", "secret")
	t.Setenv("AZURE_AI_DEPLOYMENT_NAME", "gpt-4o-mini")
	t.Setenv("AZURE_SPEECH_KEY", "speech-secret")
	t.Setenv("AZURE_SPEECH_REGION", "northeurope")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.LLMConfigured())
	assert.True(t, cfg.SpeechConfigured())
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.DeploymentName)
	assert.Equal(t, "northeurope", cfg.Speech.Region)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("AZURE_AI_PROVIDER", "bard")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_AI_PROVIDER")
}

func TestValidate_RejectsNonPositiveWindow(t *testing.T) {
	cfg := &Config{
		LLM:       LLMConfig{Provider: "azure", Timeout: time.Second},
		RateLimit: RateLimitConfig{Requests: 30},
		Session:   SessionConfig{SweepInterval: time.Minute},
	}
	require.Error(t, cfg.Validate())

	cfg.RateLimit.Window = time.Minute
	require.NoError(t, cfg.Validate())
}

func TestValidate_ServerLimits(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:    ServerConfig{BodyLimit: "10M"},
			LLM:       LLMConfig{Provider: "azure", Timeout: time.Second},
			RateLimit: RateLimitConfig{Requests: 30, Window: time.Minute},
			Session:   SessionConfig{SweepInterval: time.Minute},
		}
	}
	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Server.BodyLimit = "lots"
	assert.ErrorContains(t, cfg.Validate(), "BODY_LIMIT")

	cfg = base()
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"}
	assert.ErrorContains(t, cfg.Validate(), "TRUSTED_PROXIES")

	cfg = base()
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "2001:db8::/32"}
	assert.NoError(t, cfg.Validate())
}

func TestSystemPrompt_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Jsi asistent.\n"), 0o600))

	cfg := &Config{Assistant: AssistantConfig{SystemPromptFile: path}}
	prompt, err := cfg.SystemPrompt()
	require.NoError(t, err)
	assert.Equal(t, "Jsi asistent.", prompt)

	cfg.Assistant.SystemPromptFile = ""
	prompt, err = cfg.SystemPrompt()
	require.NoError(t, err)
	assert.Empty(t, prompt)
}

// unsetEnv removes keys for the duration of the test; envconfig treats an empty value as set.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
