package entities

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func activeSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("s-1", t0)
	require.NoError(t, s.Activate())
	return s
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession("s-1", t0)
	assert.Equal(t, SessionStatusCreated, s.Status)

	_, err := s.AppendTurn(RoleUser, "ahoj", t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	require.NoError(t, s.Activate())
	assert.ErrorIs(t, s.Activate(), ErrInvalidTransition)

	n, err := s.AppendTurn(RoleAssistant, "Dobrý den", t0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.AppendTurn(RoleUser, "Kolik to stojí?", t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Complete(t0.Add(90*time.Second)))
	assert.Equal(t, SessionStatusCompleted, s.Status)
	assert.Equal(t, 90, s.DurationSeconds())

	_, err = s.AppendTurn(RoleUser, "ještě něco", t0.Add(100*time.Second))
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.Complete(t0.Add(100*time.Second)), ErrSessionAlreadyEnded)
	assert.Equal(t, 2, s.Transcript.Len())
}

func TestSession_CompleteClampsNegativeDuration(t *testing.T) {
	s := activeSession(t)
	require.NoError(t, s.Complete(t0.Add(-time.Minute)))
	assert.Equal(t, time.Duration(0), s.Duration())
}

func TestSession_SummaryIsWriteOnce(t *testing.T) {
	s := activeSession(t)
	first := &Summary{Reason: "Cenová poptávka", GeneratedBy: GeneratedByRules}

	assert.ErrorIs(t, s.SetSummary(first), ErrInvalidTransition)

	require.NoError(t, s.Complete(t0.Add(time.Minute)))
	require.NoError(t, s.SetSummary(first))
	assert.ErrorIs(t, s.SetSummary(&Summary{Reason: "jiný"}), ErrSummaryAlreadySet)
	assert.Equal(t, "Cenová poptávka", s.Summary.Reason)

	first.Reason = "mutated"
	assert.Equal(t, "Cenová poptávka", s.Summary.Reason)
}

func TestSession_SnapshotIsIndependent(t *testing.T) {
	s := activeSession(t)
	_, err := s.AppendTurn(RoleUser, "ahoj", t0)
	require.NoError(t, err)

	snap := s.Snapshot()
	_, err = s.AppendTurn(RoleAssistant, "Dobrý den", t0)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Transcript.Len())
	assert.Equal(t, 2, s.Transcript.Len())
}

func TestSession_JSON(t *testing.T) {
	s := activeSession(t)
	_, err := s.AppendTurn(RoleUser, "ahoj", t0)
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "s-1", got["sessionId"])
	assert.Equal(t, "active", got["status"])
	assert.NotContains(t, got, "endTime")
	turns := got["transcript"].([]interface{})
	require.Len(t, turns, 1)
	assert.Equal(t, "user", turns[0].(map[string]interface{})["role"])
}

func TestCountTurns(t *testing.T) {
	tr := NewTranscript(
		Turn{Role: RoleAssistant, Text: "a"},
		Turn{Role: RoleUser, Text: "b"},
		Turn{Role: RoleAssistant, Text: "c"},
	)
	user, assistant := CountTurns(tr.Snapshot())
	assert.Equal(t, 1, user)
	assert.Equal(t, 2, assistant)
	assert.Equal(t, tr.Len(), user+assistant)
}

func TestParseSentiment(t *testing.T) {
	cases := map[string]Sentiment{
		"Pozitivní":  SentimentPositive,
		"negative":   SentimentNegative,
		"Neutrální":  SentimentNeutral,
		" Positive ": SentimentPositive,
		"happy":      SentimentNeutral,
		"":           SentimentNeutral,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseSentiment(in), in)
	}
}
