package speech

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/pkg/config"
)

const (
	// MockTranscript is returned by the mock transcriber
	MockTranscript = "Mockovaný přepis řeči"
	// MockAudio is returned by the mock synthesizer
	MockAudio = "mock-audio-data-base64"
	// DemoToken is handed to the browser when no speech key is configured
	DemoToken = "DEMO_TOKEN"
	// TokenTTL is the lifetime of an Azure speech authorization token in seconds
	TokenTTL = 600
)

// ErrEmptyAudio is returned when a transcription request carries no audio
var ErrEmptyAudio = errors.New("empty audio payload")

// Transcriber converts captured audio to text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer converts text to encoded audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TokenIssuer exchanges the subscription key for a short-lived browser token
type TokenIssuer interface {
	IssueToken(ctx context.Context) (string, error)
}

// VoiceConfig describes the voice the browser SDK should use
type VoiceConfig struct {
	VoiceName   string `json:"voiceName"`
	SpeechRate  string `json:"speechRate"`
	SpeechPitch string `json:"speechPitch"`
	AudioFormat string `json:"audioFormat"`
}

// Token is a browser speech token
type Token struct {
	Token     string `json:"token"`
	Region    string `json:"region"`
	ExpiresIn int    `json:"expiresIn"`
}

// Settings is the public speech configuration
type Settings struct {
	Region      string      `json:"region"`
	Language    string      `json:"language"`
	VoiceConfig VoiceConfig `json:"voiceConfig"`
}

// Service is the speech I/O adapter used by the HTTP layer
type Service struct {
	transcriber Transcriber
	synthesizer Synthesizer
	tokens      TokenIssuer
	settings    Settings
	mock        bool
	logger      *zap.Logger
}

// NewService wires the providers selected by configuration:
// AssemblyAI for STT when its key is present, Azure Speech otherwise, mocks without credentials.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	s := &Service{
		settings: Settings{
			Region:   cfg.Speech.Region,
			Language: cfg.Speech.Language,
			VoiceConfig: VoiceConfig{
				VoiceName:   cfg.Speech.Voice,
				SpeechRate:  "1.0",
				SpeechPitch: "0%",
				AudioFormat: cfg.Speech.OutputFormat,
			},
		},
		logger: logger,
	}

	mock := Mock{}
	if cfg.SpeechConfigured() {
		azure := NewAzureClient(cfg.Speech)
		s.transcriber, s.synthesizer, s.tokens = azure, azure, azure
	} else {
		s.transcriber, s.synthesizer = mock, mock
		s.mock = true
	}
	if cfg.AssemblyAI.APIKey != "" {
		s.transcriber = NewAssemblyAITranscriber(cfg.AssemblyAI)
	}
	return s
}

// NewServiceWith builds a service from explicit providers. A nil TokenIssuer yields demo tokens.
func NewServiceWith(t Transcriber, s Synthesizer, tokens TokenIssuer, settings Settings, logger *zap.Logger) *Service {
	return &Service{transcriber: t, synthesizer: s, tokens: tokens, settings: settings, logger: logger}
}

// Mocked reports whether the service runs without speech credentials
func (s *Service) Mocked() bool {
	return s.mock
}

// SpeechToText transcribes audio
func (s *Service) SpeechToText(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}
	text, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", err
	}
	if s.logger != nil {
		s.logger.Debug("speech.transcribed", zap.Int("audio_bytes", len(audio)), zap.Int("text_len", len(text)))
	}
	return text, nil
}

// TextToSpeech synthesizes text into audio bytes
func (s *Service) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Debug("speech.synthesized", zap.Int("text_len", len(text)), zap.Int("audio_bytes", len(audio)))
	}
	return audio, nil
}

// Token returns a browser token, or the demo token when no issuer is configured
func (s *Service) Token(ctx context.Context) (Token, error) {
	tok := Token{Token: DemoToken, Region: s.settings.Region, ExpiresIn: TokenTTL}
	if s.tokens == nil {
		return tok, nil
	}
	issued, err := s.tokens.IssueToken(ctx)
	if err != nil {
		return Token{}, err
	}
	tok.Token = issued
	return tok, nil
}

// Settings returns the public speech configuration
func (s *Service) Settings() Settings {
	return s.settings
}

// Mock is the credential-free provider
type Mock struct{}

func (Mock) Transcribe(context.Context, []byte) (string, error) {
	return MockTranscript, nil
}

func (Mock) Synthesize(context.Context, string) ([]byte, error) {
	return []byte(MockAudio), nil
}
