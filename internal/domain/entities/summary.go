package entities

import (
	"strings"
	"time"
)

// Sentiment classifies the customer's mood over the call
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// ParseSentiment maps Czech or English labels onto Sentiment. Unknown values are Neutral.
func ParseSentiment(s string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pozitivní", "pozitivni":
		return SentimentPositive
	case "negative", "negativní", "negativni":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Summary provenance
const (
	GeneratedByLanguageModel = "language-model"
	GeneratedByRules         = "rule-based"
)

// Summary is the structured end-of-call record
type Summary struct {
	Reason           string    `json:"reason"`
	CustomerNeeds    []string  `json:"customerNeeds"`
	AIActions        []string  `json:"aiActions"`
	FollowUp         string    `json:"followUp"`
	Sentiment        Sentiment `json:"sentiment"`
	KeyPoints        []string  `json:"keyPoints,omitempty"`
	MessageCount     int       `json:"messageCount"`
	UserMessageCount int       `json:"userMessageCount"`
	AIMessageCount   int       `json:"aiMessageCount"`
	Duration         int       `json:"duration"`
	Timestamp        time.Time `json:"timestamp"`
	GeneratedBy      string    `json:"generatedBy"`
	Model            string    `json:"model,omitempty"`
}

// Clone returns a deep copy
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	c := *s
	c.CustomerNeeds = append([]string(nil), s.CustomerNeeds...)
	c.AIActions = append([]string(nil), s.AIActions...)
	c.KeyPoints = append([]string(nil), s.KeyPoints...)
	return &c
}
