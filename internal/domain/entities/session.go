package entities

import (
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of a call
type SessionStatus string

const (
	SessionStatusCreated   SessionStatus = "created"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session represents one call from start to completion
type Session struct {
	ID             string        `json:"sessionId"`
	Status         SessionStatus `json:"status"`
	CreatedAt      time.Time     `json:"startTime"`
	EndedAt        *time.Time    `json:"endTime,omitempty"`
	LastActivityAt time.Time     `json:"lastActivityAt"`
	Transcript     *Transcript   `json:"transcript"`
	Summary        *Summary      `json:"summary,omitempty"`

	// Processing is set while a turn or the end-of-call summary is waiting on the language model
	Processing bool `json:"processing"`
}

// NewSession creates a session in the created state
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:             id,
		Status:         SessionStatusCreated,
		CreatedAt:      now,
		LastActivityAt: now,
		Transcript:     NewTranscript(),
	}
}

// Activate moves a created session to active
func (s *Session) Activate() error {
	if s.Status != SessionStatusCreated {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, SessionStatusActive)
	}
	s.Status = SessionStatusActive
	return nil
}

// AppendTurn records a turn on an active session and returns the transcript length
func (s *Session) AppendTurn(role Role, text string, now time.Time) (int, error) {
	switch s.Status {
	case SessionStatusActive:
	case SessionStatusCompleted:
		return 0, ErrSessionClosed
	default:
		return 0, fmt.Errorf("%w: cannot record turns while %s", ErrInvalidTransition, s.Status)
	}
	s.LastActivityAt = now
	return s.Transcript.Append(Turn{Role: role, Text: text, Timestamp: now}), nil
}

// Complete ends the call. now is clamped so the duration is never negative.
func (s *Session) Complete(now time.Time) error {
	switch s.Status {
	case SessionStatusActive:
	case SessionStatusCompleted:
		return ErrSessionAlreadyEnded
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, SessionStatusCompleted)
	}
	if now.Before(s.CreatedAt) {
		now = s.CreatedAt
	}
	s.EndedAt = &now
	s.LastActivityAt = now
	s.Status = SessionStatusCompleted
	return nil
}

// Duration is the time between start and end, or zero while the call is running
func (s *Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.CreatedAt)
}

// DurationSeconds is Duration rounded down to whole seconds
func (s *Session) DurationSeconds() int {
	return int(s.Duration() / time.Second)
}

// SetSummary stores the summary exactly once after completion
func (s *Session) SetSummary(summary *Summary) error {
	if s.Status != SessionStatusCompleted {
		return fmt.Errorf("%w: summary requires a completed session", ErrInvalidTransition)
	}
	if s.Summary != nil {
		return ErrSummaryAlreadySet
	}
	s.Summary = summary.Clone()
	return nil
}

// Snapshot returns a deep copy that is safe to hand out
func (s *Session) Snapshot() *Session {
	c := &Session{
		ID:             s.ID,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		Transcript:     NewTranscript(s.Transcript.Snapshot()...),
		Summary:        s.Summary.Clone(),
		Processing:     s.Processing,
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		c.EndedAt = &ended
	}
	return c
}
