package presenter

import (
	"github.com/johnquangdev/call-assistant/internal/adapter/dto/call"
	"github.com/johnquangdev/call-assistant/internal/domain/entities"
)

// ToMetadata converts a completed session to the end-of-call metadata
func ToMetadata(s *entities.Session) call.Metadata {
	return call.Metadata{
		SessionID:    s.ID,
		StartTime:    s.CreatedAt,
		EndTime:      s.EndedAt,
		Duration:     s.DurationSeconds(),
		MessageCount: s.Transcript.Len(),
		Summary:      s.Summary,
	}
}

// ToSessionResponse converts a session snapshot to SessionResponse DTO
func ToSessionResponse(s *entities.Session) *call.SessionResponse {
	if s == nil {
		return nil
	}

	turns := s.Transcript.Snapshot()
	transcript := make([]call.TurnResponse, 0, len(turns))
	for _, t := range turns {
		transcript = append(transcript, call.TurnResponse{
			Role:      string(t.Role),
			Text:      t.Text,
			Timestamp: t.Timestamp,
		})
	}

	return &call.SessionResponse{
		SessionID:  s.ID,
		Status:     string(s.Status),
		StartTime:  s.CreatedAt,
		EndTime:    s.EndedAt,
		Duration:   s.DurationSeconds(),
		Processing: s.Processing,
		Transcript: transcript,
		Summary:    s.Summary,
	}
}
