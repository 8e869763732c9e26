package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
	"github.com/johnquangdev/call-assistant/pkg/ai"
	"github.com/johnquangdev/call-assistant/pkg/callcontext"
)

const analystInstruction = "Jsi expert na analýzu zákaznických hovorů. Vytváříš strukturovaná shrnutí v JSON formátu."

var analysisOptions = ai.CompletionOptions{
	MaxOutputTokens: 800,
	Temperature:     0.3,
	ResponseFormat:  ai.ResponseFormatJSON,
}

// Generator produces the end-of-call summary. It always returns a summary.
type Generator interface {
	Summarize(ctx context.Context, turns []entities.Turn, durationSeconds int) *entities.Summary
}

// Service tries the language model first and falls back to the keyword rules
type Service struct {
	llm    ai.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a summary service
func NewService(llm ai.Client, logger *zap.Logger) *Service {
	return &Service{llm: llm, logger: logger, now: time.Now}
}

// Summarize builds the summary for a finished call
func (s *Service) Summarize(ctx context.Context, turns []entities.Turn, durationSeconds int) *entities.Summary {
	at := s.now().UTC()

	summary, err := s.fromLanguageModel(ctx, turns, durationSeconds)
	if err != nil {
		if s.logger != nil {
			fields := append(callcontext.Fields(ctx),
				zap.Error(err),
				zap.Int("turns", len(turns)),
				zap.Duration("duration", callcontext.Elapsed(ctx)),
			)
			s.logger.Warn("summary.llm.fallback", fields...)
		}
		return RuleBased(turns, durationSeconds, at)
	}

	summary.Duration = durationSeconds
	summary.Timestamp = at
	summary.GeneratedBy = entities.GeneratedByLanguageModel
	summary.Model = s.llm.Model()
	applyCounts(summary, turns)
	return summary
}

func (s *Service) fromLanguageModel(ctx context.Context, turns []entities.Turn, durationSeconds int) (*entities.Summary, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no client", ai.ErrUnavailable)
	}
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: analystInstruction},
		{Role: ai.RoleUser, Content: AnalysisPrompt(turns, durationSeconds)},
	}
	content, err := s.llm.Complete(ctx, messages, analysisOptions)
	if err != nil {
		return nil, err
	}
	return parseAnalysis(content)
}

// AnalysisPrompt embeds the conversation and its length into the analysis request
func AnalysisPrompt(turns []entities.Turn, durationSeconds int) string {
	var conv strings.Builder
	for i, turn := range turns {
		if i > 0 {
			conv.WriteByte('\n')
		}
		speaker := "AI Asistent"
		if turn.Role == entities.RoleUser {
			speaker = "Zákazník"
		}
		conv.WriteString(speaker)
		conv.WriteString(": ")
		conv.WriteString(turn.Text)
	}

	return fmt.Sprintf(`Analyzuj následující hovor mezi zákazníkem a AI asistentem a vytvoř strukturované shrnutí.

KONVERZACE:
%s

DÉLKA HOVORU: %d sekund

Vytvoř JSON s následující strukturou:
{
  "reason": "Stručný důvod hovoru (max 50 znaků)",
  "customerNeeds": ["seznam identifikovaných potřeb zákazníka"],
  "aiActions": ["co AI asistent udělal během hovoru"],
  "followUp": "doporučené další kroky",
  "sentiment": "Pozitivní/Neutrální/Negativní",
  "keyPoints": ["3-5 klíčových bodů z hovoru"]
}

Odpověz pouze validním JSON bez dalšího textu.`, conv.String(), durationSeconds)
}
