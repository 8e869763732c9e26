package summary

import (
	"strings"
	"time"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
)

type keywordRule struct {
	keywords []string
	value    string
}

// reasonRules are checked in order; the first match wins
var reasonRules = []keywordRule{
	{[]string{"cena", "kolik"}, "Cenová poptávka"},
	{[]string{"info", "informace"}, "Žádost o informace"},
	{[]string{"kontakt", "email"}, "Žádost o kontaktní údaje"},
	{[]string{"problém", "nefunguje"}, "Technický problém"},
	{[]string{"objednávka", "koupit"}, "Objednávka služby"},
}

// needRules are independent; every match adds a need
var needRules = []keywordRule{
	{[]string{"cena"}, "Cenová nabídka"},
	{[]string{"info", "jak"}, "Podrobné informace"},
	{[]string{"kontakt", "email"}, "Kontaktní údaje"},
	{[]string{"demo", "vyzkoušet"}, "Ukázka produktu"},
}

var followUpRules = []keywordRule{
	{[]string{"email", "pošlete"}, "Zaslání informací emailem"},
	{[]string{"zavolat", "telefon"}, "Telefonický kontakt"},
	{[]string{"demo", "vyzkoušet"}, "Poskytnutí přístupu k demo"},
}

var (
	positiveKeywords = []string{"děkuji", "super", "výborně"}
	negativeKeywords = []string{"problém", "nefunguje", "nespokojen"}
)

const (
	defaultReason   = "Obecný dotaz"
	defaultNeed     = "Základní informace"
	defaultFollowUp = "Žádný specifický follow-up"
)

// AIActions is the fixed list of actions reported by the rule-based summary
var AIActions = []string{
	"Poskytnutí základních informací o službách",
	"Odpovědi na dotazy zákazníka",
	"Navržení dalších kroků",
}

// RuleBased derives a summary from keyword tables. It makes no external calls
// and returns identical output for identical input.
func RuleBased(turns []entities.Turn, durationSeconds int, at time.Time) *entities.Summary {
	texts := make([]string, 0, len(turns))
	for _, turn := range turns {
		texts = append(texts, strings.ToLower(turn.Text))
	}
	all := strings.Join(texts, " ")

	reason := defaultReason
	if r, ok := firstMatch(all, reasonRules); ok {
		reason = r
	}

	var needs []string
	for _, rule := range needRules {
		if containsAny(all, rule.keywords) {
			needs = append(needs, rule.value)
		}
	}
	if len(needs) == 0 {
		needs = []string{defaultNeed}
	}

	followUp := defaultFollowUp
	if f, ok := firstMatch(all, followUpRules); ok {
		followUp = f
	}

	sentiment := entities.SentimentNeutral
	switch {
	case containsAny(all, positiveKeywords):
		sentiment = entities.SentimentPositive
	case containsAny(all, negativeKeywords):
		sentiment = entities.SentimentNegative
	}

	summary := &entities.Summary{
		Reason:        reason,
		CustomerNeeds: needs,
		AIActions:     append([]string(nil), AIActions...),
		FollowUp:      followUp,
		Sentiment:     sentiment,
		Duration:      durationSeconds,
		Timestamp:     at,
		GeneratedBy:   entities.GeneratedByRules,
	}
	applyCounts(summary, turns)
	return summary
}

func applyCounts(s *entities.Summary, turns []entities.Turn) {
	s.MessageCount = len(turns)
	s.UserMessageCount, s.AIMessageCount = entities.CountTurns(turns)
}

func firstMatch(text string, rules []keywordRule) (string, bool) {
	for _, rule := range rules {
		if containsAny(text, rule.keywords) {
			return rule.value, true
		}
	}
	return "", false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
