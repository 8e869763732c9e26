package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/bytes"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Speech     SpeechConfig
	AssemblyAI AssemblyAIConfig
	Session    SessionConfig
	RateLimit  RateLimitConfig
	Assistant  AssistantConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	StaticDir       string        `envconfig:"STATIC_DIR"`
	BodyLimit       string        `envconfig:"BODY_LIMIT" default:"10M"`
	TrustedProxies  []string      `envconfig:"TRUSTED_PROXIES"`
}

// LLMConfig holds the language-model provider settings (AZURE_AI_*)
type LLMConfig struct {
	Provider       string        `envconfig:"PROVIDER" default:"azure"`
	Endpoint       string        `envconfig:"ENDPOINT"`
	APIKey         string        `envconfig:"KEY"`
	DeploymentName string        `envconfig:"DEPLOYMENT_NAME" default:"gpt-4o"`
	APIVersion     string        `envconfig:"API_VERSION"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"20s"`
	MaxRPS         float64       `envconfig:"MAX_RPS" default:"0"`
}

// SpeechConfig holds Azure Speech settings (AZURE_SPEECH_*)
type SpeechConfig struct {
	Key          string        `envconfig:"KEY"`
	Region       string        `envconfig:"REGION" default:"westeurope"`
	Language     string        `envconfig:"LANGUAGE" default:"cs-CZ"`
	Voice        string        `envconfig:"VOICE" default:"cs-CZ-AntoninNeural"`
	OutputFormat string        `envconfig:"OUTPUT_FORMAT" default:"audio-16khz-32kbitrate-mono-mp3"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"15s"`
}

// AssemblyAIConfig holds AssemblyAI settings (ASSEMBLYAI_*)
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"API_KEY"`
	LanguageCode string `envconfig:"LANGUAGE_CODE" default:"cs"`
}

// SessionConfig holds call-session retention settings (SESSION_*)
type SessionConfig struct {
	Retention     time.Duration `envconfig:"RETENTION" default:"30m"`
	IdleTimeout   time.Duration `envconfig:"IDLE_TIMEOUT" default:"1h"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
}

// RateLimitConfig holds per-client request limits (RATE_LIMIT_*)
type RateLimitConfig struct {
	Requests      int           `envconfig:"REQUESTS" default:"30"`
	Window        time.Duration `envconfig:"WINDOW" default:"60s"`
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// AssistantConfig holds persona settings (ASSISTANT_*)
type AssistantConfig struct {
	Greeting         string `envconfig:"GREETING"`
	SystemPromptFile string `envconfig:"SYSTEM_PROMPT_FILE"`
}

// sections maps every config section to its environment prefix
func (c *Config) sections() map[string]interface{} {
	return map[string]interface{}{
		"":             &c.Server,
		"AZURE_AI":     &c.LLM,
		"AZURE_SPEECH": &c.Speech,
		"ASSEMBLYAI":   &c.AssemblyAI,
		"SESSION":      &c.Session,
		"RATE_LIMIT":   &c.RateLimit,
		"ASSISTANT":    &c.Assistant,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	for prefix, section := range config.sections() {
		if err := envconfig.Process(prefix, section); err != nil {
			return nil, fmt.Errorf("failed to read %s configuration: %w", sectionName(prefix), err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.warnMissingCredentials()
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.BodyLimit != "" {
		if _, err := bytes.Parse(c.Server.BodyLimit); err != nil {
			return fmt.Errorf("BODY_LIMIT is invalid: %w", err)
		}
	}
	for _, cidr := range c.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(strings.TrimSpace(cidr)); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not a CIDR range", cidr)
		}
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "azure", "openai":
	default:
		return fmt.Errorf("AZURE_AI_PROVIDER must be azure or openai, got %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("AZURE_AI_TIMEOUT must be positive")
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// LLMConfigured reports whether the language-model provider has credentials
func (c *Config) LLMConfigured() bool {
	if strings.EqualFold(c.LLM.Provider, "openai") {
		return c.LLM.APIKey != ""
	}
	return c.LLM.Endpoint != "" && c.LLM.APIKey != ""
}

// SpeechConfigured reports whether Azure Speech has credentials
func (c *Config) SpeechConfigured() bool {
	return c.Speech.Key != "" && c.Speech.Region != ""
}

// SystemPrompt returns the persona override read from ASSISTANT_SYSTEM_PROMPT_FILE, if any
func (c *Config) SystemPrompt() (string, error) {
	if c.Assistant.SystemPromptFile == "" {
		return "", nil
	}
	b, err := os.ReadFile(c.Assistant.SystemPromptFile)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// warnMissingCredentials logs which providers will run in demo mode. Values are never printed.
func (c *Config) warnMissingCredentials() {
	if !c.LLMConfigured() {
		log.Printf("Warning: AZURE_AI_ENDPOINT/AZURE_AI_KEY not set - replies use the demo responder")
	}
	if !c.SpeechConfigured() && c.AssemblyAI.APIKey == "" {
		log.Printf("Warning: AZURE_SPEECH_KEY not set - speech endpoints return mock data")
	}
	if c.RateLimit.RedisAddr == "" {
		log.Printf("Rate limiting uses in-process memory (RATE_LIMIT_REDIS_ADDR not set)")
	}
}

func sectionName(prefix string) string {
	if prefix == "" {
		return "server"
	}
	return strings.ToLower(prefix)
}
