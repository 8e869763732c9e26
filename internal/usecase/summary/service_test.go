package summary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
	"github.com/johnquangdev/call-assistant/pkg/ai"
)

type fakeLLM struct {
	reply    string
	err      error
	messages []ai.Message
	opts     ai.CompletionOptions
}

func (f *fakeLLM) Complete(_ context.Context, messages []ai.Message, opts ai.CompletionOptions) (string, error) {
	f.messages, f.opts = messages, opts
	return f.reply, f.err
}

func (f *fakeLLM) Model() string { return "gpt-4o" }

var at = time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

func turns(texts ...string) []entities.Turn {
	out := make([]entities.Turn, 0, len(texts))
	for i, text := range texts {
		role := entities.RoleAssistant
		if i%2 == 1 {
			role = entities.RoleUser
		}
		out = append(out, entities.Turn{Role: role, Text: text, Timestamp: at})
	}
	return out
}

func fixedService(llm ai.Client) *Service {
	s := NewService(llm, nil)
	s.now = func() time.Time { return at }
	return s
}

func TestRuleBased_PricingInquiry(t *testing.T) {
	s := RuleBased(turns("Dobrý den", "Jaká je cena služby?"), 42, at)

	assert.Equal(t, "Cenová poptávka", s.Reason)
	assert.Contains(t, s.CustomerNeeds, "Cenová nabídka")
	assert.Equal(t, AIActions, s.AIActions)
	assert.Equal(t, entities.GeneratedByRules, s.GeneratedBy)
	assert.Equal(t, 42, s.Duration)
}

func TestRuleBased_Tables(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		reason    string
		needs     []string
		followUp  string
		sentiment entities.Sentiment
	}{
		{"default", "Dobrý den", defaultReason, []string{defaultNeed}, defaultFollowUp, entities.SentimentNeutral},
		{"info before contact", "chci informace, pošlete email", "Žádost o informace", []string{"Podrobné informace", "Kontaktní údaje"}, "Zaslání informací emailem", entities.SentimentNeutral},
		{"problem", "aplikace nefunguje", "Technický problém", []string{defaultNeed}, defaultFollowUp, entities.SentimentNegative},
		{"order with demo", "chci koupit, můžu vyzkoušet demo? super", "Objednávka služby", []string{"Ukázka produktu"}, "Poskytnutí přístupu k demo", entities.SentimentPositive},
		{"phone", "můžete mi zavolat? děkuji", defaultReason, []string{defaultNeed}, "Telefonický kontakt", entities.SentimentPositive},
		{"positive wins over negative", "problém vyřešen, děkuji", "Technický problém", []string{defaultNeed}, defaultFollowUp, entities.SentimentPositive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := RuleBased(turns("", tc.text), 0, at)
			assert.Equal(t, tc.reason, s.Reason)
			assert.Equal(t, tc.needs, s.CustomerNeeds)
			assert.Equal(t, tc.followUp, s.FollowUp)
			assert.Equal(t, tc.sentiment, s.Sentiment)
		})
	}
}

func TestRuleBased_IsPure(t *testing.T) {
	tr := turns("Dobrý den", "Kolik stojí demo?", "Cena je individuální.", "Děkuji")
	first, err := json.Marshal(RuleBased(tr, 30, at))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(RuleBased(tr, 30, at))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestRuleBased_RoleCounts(t *testing.T) {
	tr := turns("a", "b", "c", "d", "e")
	s := RuleBased(tr, 0, at)
	assert.Equal(t, 5, s.MessageCount)
	assert.Equal(t, 3, s.AIMessageCount)
	assert.Equal(t, 2, s.UserMessageCount)
	assert.Equal(t, s.MessageCount, s.UserMessageCount+s.AIMessageCount)
}

func TestSummarize_LanguageModel(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n" + `{
		"reason": "Dotaz na cenu",
		"customerNeeds": ["Cenová nabídka", " "],
		"aiActions": ["Vysvětlil ceník"],
		"followUp": "Poslat nabídku",
		"sentiment": "Pozitivní",
		"keyPoints": ["Zájem o demo"]
	}` + "\n```"}

	tr := turns("Dobrý den", "Kolik to stojí?", "Záleží na rozsahu.")
	s := fixedService(llm).Summarize(context.Background(), tr, 75)

	assert.Equal(t, entities.GeneratedByLanguageModel, s.GeneratedBy)
	assert.Equal(t, "gpt-4o", s.Model)
	assert.Equal(t, "Dotaz na cenu", s.Reason)
	assert.Equal(t, []string{"Cenová nabídka"}, s.CustomerNeeds)
	assert.Equal(t, entities.SentimentPositive, s.Sentiment)
	assert.Equal(t, 75, s.Duration)
	assert.Equal(t, at, s.Timestamp)
	assert.Equal(t, 3, s.MessageCount)
	assert.Equal(t, 1, s.UserMessageCount)
	assert.Equal(t, 2, s.AIMessageCount)

	require.Len(t, llm.messages, 2)
	assert.Equal(t, ai.RoleSystem, llm.messages[0].Role)
	assert.Contains(t, llm.messages[1].Content, "Zákazník: Kolik to stojí?")
	assert.Contains(t, llm.messages[1].Content, "AI Asistent: Dobrý den")
	assert.Contains(t, llm.messages[1].Content, "DÉLKA HOVORU: 75 sekund")
	assert.Equal(t, ai.ResponseFormatJSON, llm.opts.ResponseFormat)
	assert.Equal(t, 800, llm.opts.MaxOutputTokens)
}

func TestSummarize_FallsBackOnUnavailable(t *testing.T) {
	llm := &fakeLLM{err: errors.New("boom")}
	tr := turns("Dobrý den", "cena?")
	s := fixedService(llm).Summarize(context.Background(), tr, 10)

	assert.Equal(t, entities.GeneratedByRules, s.GeneratedBy)
	assert.Equal(t, RuleBased(tr, 10, at), s)
}

func TestSummarize_FallsBackOnMalformedJSON(t *testing.T) {
	for _, reply := range []string{"Omlouvám se, nemohu.", `{"customerNeeds":[]}`, `{"reason": 5}`} {
		s := fixedService(&fakeLLM{reply: reply}).Summarize(context.Background(), turns("a", "b"), 1)
		assert.Equal(t, entities.GeneratedByRules, s.GeneratedBy, reply)
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("Here it is: {\"a\":1} hope it helps"))
	assert.Equal(t, `{"a":1}`, extractJSON(`  {"a":1}  `))
}
