package speech

import (
	"bytes"
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/call-assistant/pkg/config"
)

// AssemblyAITranscriber uploads recorded utterances to AssemblyAI and waits for the transcript
type AssemblyAITranscriber struct {
	client       *aai.Client
	languageCode string
}

// NewAssemblyAITranscriber creates a transcriber using the provided config
func NewAssemblyAITranscriber(cfg config.AssemblyAIConfig) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{
		client:       aai.NewClient(cfg.APIKey),
		languageCode: cfg.LanguageCode,
	}
}

// Transcribe blocks until AssemblyAI finishes or ctx is done
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	params := &aai.TranscriptOptionalParams{}
	if t.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.languageCode)
	}

	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, bytes.NewReader(audio), params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", reason)
	}
	if transcript.Text == nil {
		return "", nil
	}
	return *transcript.Text, nil
}
