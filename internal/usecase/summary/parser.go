package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
)

// analysisResult is the JSON shape requested from the language model
type analysisResult struct {
	Reason        string   `json:"reason"`
	CustomerNeeds []string `json:"customerNeeds"`
	AIActions     []string `json:"aiActions"`
	FollowUp      string   `json:"followUp"`
	Sentiment     string   `json:"sentiment"`
	KeyPoints     []string `json:"keyPoints"`
}

// parseAnalysis converts a model reply into summary fields.
// Counts, duration and provenance are filled by the caller.
func parseAnalysis(content string) (*entities.Summary, error) {
	content = extractJSON(content)

	var result analysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	// Validate required fields
	if strings.TrimSpace(result.Reason) == "" {
		return nil, fmt.Errorf("missing reason in response")
	}

	return &entities.Summary{
		Reason:        strings.TrimSpace(result.Reason),
		CustomerNeeds: compact(result.CustomerNeeds),
		AIActions:     compact(result.AIActions),
		FollowUp:      strings.TrimSpace(result.FollowUp),
		Sentiment:     entities.ParseSentiment(result.Sentiment),
		KeyPoints:     compact(result.KeyPoints),
	}, nil
}

// extractJSON strips markdown fences and any prose around the object
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		content = content[start : end+1]
	}
	return strings.TrimSpace(content)
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
