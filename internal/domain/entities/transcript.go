package entities

import (
	"encoding/json"
	"sync"
	"time"
)

// Role tags who produced a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in a call. Turns are never modified once appended.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is an append-only, ordered list of turns
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewTranscript creates a transcript seeded with turns
func NewTranscript(turns ...Turn) *Transcript {
	t := &Transcript{turns: make([]Turn, 0, len(turns)+8)}
	t.turns = append(t.turns, turns...)
	return t
}

// Append adds a turn and returns the new length
func (t *Transcript) Append(turn Turn) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
	return len(t.turns)
}

// Snapshot returns an ordered copy of all turns
func (t *Transcript) Snapshot() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// MarshalJSON renders the transcript as a plain array of turns
func (t *Transcript) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

func countByRole(turns []Turn, role Role) int {
	n := 0
	for _, turn := range turns {
		if turn.Role == role {
			n++
		}
	}
	return n
}

// CountTurns counts turns of a snapshot by role
func CountTurns(turns []Turn) (user, assistant int) {
	return countByRole(turns, RoleUser), countByRole(turns, RoleAssistant)
}
