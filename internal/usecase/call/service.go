package call

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-assistant/internal/domain/entities"
	"github.com/johnquangdev/call-assistant/internal/domain/repositories"
	"github.com/johnquangdev/call-assistant/internal/usecase/summary"
	"github.com/johnquangdev/call-assistant/pkg/ai"
	"github.com/johnquangdev/call-assistant/pkg/callcontext"
)

// Service defines the call session lifecycle
type Service interface {
	// Create starts a call and returns its id and greeting
	Create(ctx context.Context) (*CreateOutput, error)

	// RecordUserTurn appends a user utterance without asking the model
	RecordUserTurn(ctx context.Context, sessionID, text string) error

	// ProcessTurn records the user utterance and the assistant's reply
	ProcessTurn(ctx context.Context, sessionID, userText string) (*TurnOutput, error)

	// End completes the call and stores its summary
	End(ctx context.Context, sessionID string) (*entities.Session, error)

	// Get returns a snapshot of the call
	Get(ctx context.Context, sessionID string) (*entities.Session, error)
}

// CreateOutput is returned by Create
type CreateOutput struct {
	SessionID string
	Greeting  string
}

// TurnOutput is returned by ProcessTurn
type TurnOutput struct {
	SessionID string
	Response  string
	// Fallback is true when the reply came from the demo responder
	Fallback bool
}

// Options customizes the assistant persona
type Options struct {
	Greeting     string
	SystemPrompt string
}

type callService struct {
	sessions     repositories.SessionRepository
	llm          ai.Client
	summaries    summary.Generator
	greeting     string
	systemPrompt string
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// NewService constructs the call session service
func NewService(
	sessions repositories.SessionRepository,
	llm ai.Client,
	summaries summary.Generator,
	opts Options,
	logger *zap.Logger,
) Service {
	if opts.Greeting == "" {
		opts.Greeting = DefaultGreeting
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	return &callService{
		sessions:     sessions,
		llm:          llm,
		summaries:    summaries,
		greeting:     opts.Greeting,
		systemPrompt: opts.SystemPrompt,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Create allocates a session, activates it and appends the greeting turn
func (s *callService) Create(ctx context.Context) (*CreateOutput, error) {
	now := s.now()
	session := entities.NewSession(s.newID(), now)
	if err := session.Activate(); err != nil {
		return nil, err
	}
	if _, err := session.AppendTurn(entities.RoleAssistant, s.greeting, now); err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📞 Call started", zap.String("session_id", session.ID))
	}
	return &CreateOutput{SessionID: session.ID, Greeting: s.greeting}, nil
}

// RecordUserTurn appends a user turn to an active session that is not busy
func (s *callService) RecordUserTurn(ctx context.Context, sessionID, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is required", entities.ErrInvalidRequest)
	}
	err := s.sessions.Update(ctx, sessionID, func(session *entities.Session) error {
		if session.Processing {
			return entities.ErrSessionBusy
		}
		_, err := session.AppendTurn(entities.RoleUser, text, s.now())
		return err
	})
	return wrapSessionErr(err, sessionID)
}

// ProcessTurn runs one user turn. At most one turn per session is in flight;
// a concurrent call gets ErrSessionBusy. Model failures are answered by DemoReply.
func (s *callService) ProcessTurn(ctx context.Context, sessionID, userText string) (*TurnOutput, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, fmt.Errorf("%w: userMessage is required", entities.ErrInvalidRequest)
	}

	var history []entities.Turn
	err := s.sessions.Update(ctx, sessionID, func(session *entities.Session) error {
		if session.Processing {
			return entities.ErrSessionBusy
		}
		history = session.Transcript.Snapshot()
		if _, err := session.AppendTurn(entities.RoleUser, userText, s.now()); err != nil {
			return err
		}
		session.Processing = true
		return nil
	})
	if err != nil {
		return nil, wrapSessionErr(err, sessionID)
	}

	// the assistant turn is recorded even if the caller went away
	settleCtx := context.WithoutCancel(ctx)
	settled := false
	defer func() {
		if !settled {
			_ = s.sessions.Update(settleCtx, sessionID, func(session *entities.Session) error {
				session.Processing = false
				return nil
			})
		}
	}()

	reply, fallback := s.reply(callcontext.Begin(ctx, sessionID, callcontext.OperationTurn), sessionID, history, userText)

	err = s.sessions.Update(settleCtx, sessionID, func(session *entities.Session) error {
		session.Processing = false
		settled = true
		_, err := session.AppendTurn(entities.RoleAssistant, reply, s.now())
		return err
	})
	if err != nil {
		return nil, wrapSessionErr(err, sessionID)
	}

	return &TurnOutput{SessionID: sessionID, Response: reply, Fallback: fallback}, nil
}

// reply asks the model once and falls back to the demo responder on any failure
func (s *callService) reply(ctx context.Context, sessionID string, history []entities.Turn, userText string) (string, bool) {
	messages := BuildPrompt(s.systemPrompt, history, userText)

	text, err := s.llm.Complete(ctx, messages, turnOptions)
	if err == nil && strings.TrimSpace(text) != "" {
		if s.logger != nil {
			s.logger.Debug("call.turn.completed",
				zap.String("session_id", sessionID),
				zap.Int("messages", len(messages)),
				zap.Duration("duration", callcontext.Elapsed(ctx)),
			)
		}
		return text, false
	}

	if s.logger != nil {
		s.logger.Warn("call.turn.fallback",
			zap.String("session_id", sessionID),
			zap.Bool("llm_unavailable", errors.Is(err, ai.ErrUnavailable)),
			zap.Error(err),
		)
	}
	return DemoReply(userText), true
}

// End completes an active session and stores the summary exactly once.
// The session stays active and busy while the summary is generated, then
// completion and summary are committed together.
func (s *callService) End(ctx context.Context, sessionID string) (*entities.Session, error) {
	var (
		turns    []entities.Turn
		endedAt  time.Time
		duration int
	)
	err := s.sessions.Update(ctx, sessionID, func(session *entities.Session) error {
		if session.Processing {
			return entities.ErrSessionBusy
		}
		final := session.Snapshot()
		if err := final.Complete(s.now()); err != nil {
			return err
		}
		turns = final.Transcript.Snapshot()
		endedAt = *final.EndedAt
		duration = final.DurationSeconds()
		session.Processing = true
		return nil
	})
	if err != nil {
		return nil, wrapSessionErr(err, sessionID)
	}

	settleCtx := context.WithoutCancel(ctx)
	settled := false
	defer func() {
		if !settled {
			_ = s.sessions.Update(settleCtx, sessionID, func(session *entities.Session) error {
				session.Processing = false
				return nil
			})
		}
	}()

	result := s.summaries.Summarize(callcontext.Begin(ctx, sessionID, callcontext.OperationSummary), turns, duration)

	var snapshot *entities.Session
	err = s.sessions.Update(settleCtx, sessionID, func(session *entities.Session) error {
		session.Processing = false
		settled = true
		if err := session.Complete(endedAt); err != nil {
			return err
		}
		if err := session.SetSummary(result); err != nil {
			return err
		}
		snapshot = session.Snapshot()
		return nil
	})
	if err != nil {
		return nil, wrapSessionErr(err, sessionID)
	}

	if s.logger != nil {
		s.logger.Info("✅ Call ended",
			zap.String("session_id", sessionID),
			zap.Int("duration", duration),
			zap.Int("turns", len(turns)),
			zap.String("generated_by", result.GeneratedBy),
		)
	}
	return snapshot, nil
}

// Get returns a read-only snapshot
func (s *callService) Get(ctx context.Context, sessionID string) (*entities.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, wrapSessionErr(err, sessionID)
	}
	return session, nil
}

func wrapSessionErr(err error, sessionID string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("session %s: %w", sessionID, err)
}
