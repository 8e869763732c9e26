package call

import (
	"time"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
)

// StartResponse is returned when a call starts
type StartResponse struct {
	SessionID string `json:"sessionId"`
	Greeting  string `json:"greeting"`
}

// ProcessResponse carries the assistant reply
type ProcessResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// Metadata describes a finished call
type Metadata struct {
	SessionID    string            `json:"sessionId"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      *time.Time        `json:"endTime"`
	Duration     int               `json:"duration"`
	MessageCount int               `json:"messageCount"`
	Summary      *entities.Summary `json:"summary"`
}

// EndResponse wraps the call metadata
type EndResponse struct {
	Metadata Metadata `json:"metadata"`
}

// TurnResponse is one transcript entry
type TurnResponse struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionResponse is the full session snapshot
type SessionResponse struct {
	SessionID  string            `json:"sessionId"`
	Status     string            `json:"status"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    *time.Time        `json:"endTime,omitempty"`
	Duration   int               `json:"duration"`
	Processing bool              `json:"processing"`
	Transcript []TurnResponse    `json:"transcript"`
	Summary    *entities.Summary `json:"summary,omitempty"`
}
