package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/johnquangdev/call-assistant/pkg/config"
)

const userAgent = "call-assistant"

// AzureClient calls the Azure Speech REST endpoints
type AzureClient struct {
	key          string
	language     string
	voice        string
	outputFormat string

	sttURL   string
	ttsURL   string
	tokenURL string
	client   *http.Client
}

// NewAzureClient creates an Azure Speech client for the configured region
func NewAzureClient(cfg config.SpeechConfig) *AzureClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AzureClient{
		key:          cfg.Key,
		language:     cfg.Language,
		voice:        cfg.Voice,
		outputFormat: cfg.OutputFormat,
		sttURL:       fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1", cfg.Region),
		ttsURL:       fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", cfg.Region),
		tokenURL:     fmt.Sprintf("https://%s.api.cognitive.microsoft.com/sts/v1.0/issueToken", cfg.Region),
		client:       &http.Client{Timeout: timeout},
	}
}

// recognitionResult is the simple-format STT response
type recognitionResult struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Transcribe sends 16 kHz mono PCM WAV audio for short-utterance recognition
func (a *AzureClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	q := url.Values{}
	q.Set("language", a.language)
	q.Set("format", "simple")
	q.Set("profanity", "masked")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.sttURL+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	a.authorize(req)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("azure speech-to-text returned status %d", resp.StatusCode)
	}

	var rr recognitionResult
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", err
	}
	switch rr.RecognitionStatus {
	case "Success":
		return rr.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		return "", nil
	default:
		return "", fmt.Errorf("azure speech-to-text recognition status %s", rr.RecognitionStatus)
	}
}

// Synthesize renders text with the configured neural voice
func (a *AzureClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ssml, err := a.ssml(text)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.ttsURL, strings.NewReader(ssml))
	if err != nil {
		return nil, err
	}
	a.authorize(req)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", a.outputFormat)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("azure text-to-speech returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// IssueToken exchanges the subscription key for a 10 minute authorization token
func (a *AzureClient) IssueToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, http.NoBody)
	if err != nil {
		return "", err
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("azure token endpoint returned status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (a *AzureClient) authorize(req *http.Request) {
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("User-Agent", userAgent)
}

func (a *AzureClient) ssml(text string) (string, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'><prosody rate='1.0' pitch='0%%'>%s</prosody></voice></speak>",
		a.language, a.language, a.voice, escaped.String(),
	), nil
}
